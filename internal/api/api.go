// Package api is the business facade shared by the terminal page and the
// command line. It validates drafts, drives the task store and exposes the
// derived views.
package api

import (
	"context"
	"time"

	"task-board/internal/clock"
	"task-board/internal/repository"
	"task-board/internal/services"
	"task-board/internal/validation"
)

// Options configures the facade built by New
type Options struct {
	// Slot is the storage key holding the task collection
	Slot string
	// Latency is the simulated delay applied to create and update
	Latency        time.Duration
	TitleMax       int
	DescriptionMax int
	// DateLayout is the Go reference layout for due dates
	DateLayout string
	Clock      clock.Clock
}

// New wires the services on top of store and returns the facade.
// The caller keeps ownership of store and closes it.
func New(ctx context.Context, store repository.SlotStore, opts Options) BusinessAPI {
	container := NewServiceContainer(ctx, store, opts)
	return NewBusinessAPI(container, validation.NewDraftValidator(opts.TitleMax, opts.DescriptionMax), opts.Clock)
}

// NewServiceContainer builds every service over a single task slot
func NewServiceContainer(ctx context.Context, store repository.SlotStore, opts Options) *services.ServiceContainer {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	slot := repository.NewTaskSlot(store, opts.Slot)
	return &services.ServiceContainer{
		DateService: services.NewDateService(clk, opts.DateLayout),
		TaskService: services.NewTaskService(ctx, slot, services.TaskServiceOptions{
			Latency: opts.Latency,
			Clock:   clk,
		}),
		SearchService:    services.NewSearchService(),
		ReportingService: services.NewReportingService(),
	}
}
