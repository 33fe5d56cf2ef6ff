package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/config"
	"task-board/internal/domain"
)

// fakeBootstrap records the configuration it was given and hands out an App
// over the shared mock
type fakeBootstrap struct {
	mockAPI *mockBusinessAPI
	cfg     *config.Config
	calls   int
	closed  bool
}

func (f *fakeBootstrap) bootstrap(ctx context.Context, cfg *config.Config, opts ...AppOption) (*App, func(), error) {
	f.cfg = cfg
	f.calls++
	return NewApp(f.mockAPI, cfg, opts...), func() { f.closed = true }, nil
}

func setupRootCommand(t *testing.T, stdin string, args ...string) (*RootCommand, *fakeBootstrap, *strings.Builder) {
	t.Helper()
	// Keep the developer's own config file out of the run
	t.Setenv("TB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	fake := &fakeBootstrap{mockAPI: newMockBusinessAPI()}
	root := NewRootCommand(config.NewLoader(), fake.bootstrap)
	out := &strings.Builder{}
	root.SetIO(strings.NewReader(stdin), out)
	root.SetArgs(args)
	return root, fake, out
}

func TestRootCommand_FlagOverridesReachConfig(t *testing.T) {
	root, fake, out := setupRootCommand(t, "",
		"--storage-driver", "memory", "--timer-budget", "5m", "--latency", "0s", "stats")

	require.NoError(t, root.Execute())

	require.NotNil(t, root.Config())
	assert.Equal(t, config.DriverMemory, root.Config().Storage.Driver)
	assert.Equal(t, 5*time.Minute, root.Config().Timer.Budget)
	assert.Equal(t, time.Duration(0), root.Config().Tasks.Latency)
	assert.Same(t, root.Config(), fake.cfg)
	assert.Equal(t, 1, fake.calls)
	assert.True(t, fake.closed, "storage should be released after the command")
	assert.Contains(t, out.String(), "Total:     0")
}

func TestRootCommand_UnsetFlagsKeepEnvironment(t *testing.T) {
	t.Setenv("TB_STORAGE_SLOT", "work")
	root, _, _ := setupRootCommand(t, "", "stats")

	require.NoError(t, root.Execute())
	assert.Equal(t, "work", root.Config().Storage.Slot)
	assert.Equal(t, 60*time.Minute, root.Config().Timer.Budget)
}

func TestRootCommand_InvalidOverride(t *testing.T) {
	root, fake, _ := setupRootCommand(t, "", "--date-format", "Jan", "stats")

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Zero(t, fake.calls)
}

func TestRootCommand_AddWithFlags(t *testing.T) {
	root, fake, out := setupRootCommand(t, "",
		"add", "Ship", "release", "-p", "high", "--due", "tomorrow", "-d", "Tag and publish")

	require.NoError(t, root.Execute())
	assert.Equal(t, "Added task 00000001: Ship release (due tomorrow)\n", out.String())

	require.Len(t, fake.mockAPI.tasks, 1)
	task := fake.mockAPI.tasks[0]
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, "Tag and publish", task.Description)
}

func TestRootCommand_AddWithTitleFlag(t *testing.T) {
	root, fake, out := setupRootCommand(t, "", "add", "--title", "Buy milk", "-p", "low")

	require.NoError(t, root.Execute())
	assert.Equal(t, "Added task 00000001: Buy milk (due today)\n", out.String())
	require.Len(t, fake.mockAPI.tasks, 1)
	assert.Equal(t, domain.PriorityLow, fake.mockAPI.tasks[0].Priority)
}

func TestRootCommand_EditClearsDescription(t *testing.T) {
	root, fake, _ := setupRootCommand(t, "", "edit", "00000001", "--description", "")
	task := fake.mockAPI.seed("Write report", domain.PriorityMedium, 1, false)
	fake.mockAPI.tasks[0].Description = "Quarterly numbers"

	require.NoError(t, root.Execute())
	updated, err := fake.mockAPI.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
	assert.Equal(t, "Write report", updated.Title)
}

func TestRootCommand_RemoveWithYes(t *testing.T) {
	root, fake, out := setupRootCommand(t, "", "rm", "--yes", "00000001")
	fake.mockAPI.seed("Old chore", domain.PriorityLow, 0, true)

	require.NoError(t, root.Execute())
	assert.Empty(t, fake.mockAPI.tasks)
	assert.Equal(t, "Deleted task: Old chore\n", out.String())
}

func TestRootCommand_RemoveAsksWithoutYes(t *testing.T) {
	root, fake, out := setupRootCommand(t, "n\n", "rm", "00000001")
	fake.mockAPI.seed("Old chore", domain.PriorityLow, 0, true)

	require.NoError(t, root.Execute())
	assert.Len(t, fake.mockAPI.tasks, 1)
	assert.Contains(t, out.String(), "Delete cancelled.")
}

func TestRootCommand_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "add without title", args: []string{"add"}},
		{name: "done without id", args: []string{"done"}},
		{name: "edit with two ids", args: []string{"edit", "a", "b"}},
		{name: "stats with argument", args: []string{"stats", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, _ := setupRootCommand(t, "", tt.args...)
			assert.Error(t, root.Execute())
		})
	}
}
