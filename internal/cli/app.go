package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"task-board/internal/api"
	"task-board/internal/config"
	"task-board/internal/logging"
)

// App represents the main CLI application
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	flags        *CommandFlags
	in           io.Reader
	out          io.Writer
	errorHandler *ErrorHandler
	registry     *CommandRegistry
}

// AppOption customizes an App built by NewApp
type AppOption func(*App)

// WithIO replaces stdin and stdout
func WithIO(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithFlags shares the per-command flag values bound by the cobra root
func WithFlags(flags *CommandFlags) AppOption {
	return func(a *App) {
		a.flags = flags
	}
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI:  businessAPI,
		config:       cfg,
		flags:        &CommandFlags{},
		in:           os.Stdin,
		out:          os.Stdout,
		errorHandler: NewErrorHandler(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Bootstrap turns a loaded configuration into a ready App and a cleanup
// function that releases its storage
type Bootstrap func(ctx context.Context, cfg *config.Config, opts ...AppOption) (*App, func(), error)

// DefaultBootstrap opens the store selected by the configuration and the
// TB_ENV environment, then wires the business API on top of it
func DefaultBootstrap(ctx context.Context, cfg *config.Config, opts ...AppOption) (*App, func(), error) {
	env := config.GetEnvironment()
	store, err := config.CreateRepositoryForEnvironment(env, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	businessAPI := api.New(ctx, store, api.Options{
		Slot:           cfg.Storage.Slot,
		Latency:        cfg.Tasks.Latency,
		TitleMax:       cfg.Validation.TitleMaxLength,
		DescriptionMax: cfg.Validation.DescriptionMaxLength,
		DateLayout:     cfg.Display.DateFormat,
	})

	cleanup := func() {
		if err := store.Close(); err != nil {
			logging.Warnf("closing storage: %v", err)
		}
	}
	return NewApp(businessAPI, cfg, opts...), cleanup, nil
}

// Run executes the CLI application with the given arguments.
// The first argument names the command; no arguments opens the board.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.registry.Execute(ctx, "ui", nil)
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// BusinessAPI returns the facade the commands operate on
func (a *App) BusinessAPI() api.BusinessAPI {
	return a.businessAPI
}

// printf writes formatted command output
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// shortID abbreviates a task ID for listings; any unique prefix is
// accepted back as a command argument
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
