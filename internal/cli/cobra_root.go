package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-board/internal/config"
	"task-board/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	bootstrap Bootstrap
	flags     *CommandFlags
	in        io.Reader
	out       io.Writer

	config  *config.Config
	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags.
// The App is built by bootstrap once flags are parsed, so flag overrides
// reach the storage layer.
func NewRootCommand(loader *config.Loader, bootstrap Bootstrap) *RootCommand {
	if loader == nil {
		loader = config.NewLoader()
	}
	if bootstrap == nil {
		bootstrap = DefaultBootstrap
	}
	root := &RootCommand{
		loader:    loader,
		bootstrap: bootstrap,
		flags:     &CommandFlags{},
		in:        os.Stdin,
		out:       os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "taskboard",
		Short: "A timed personal task board",
		Long: `Task Board (taskboard) keeps a short list of personal tasks while a countdown runs.

FEATURES:
  • Create, edit, complete and delete tasks with priorities and due dates
  • Search by title, description or priority
  • Live stats: total, completed, pending and overdue
  • Full-screen board with a countdown timer (run without a subcommand)
  • Tasks persist in SQLite, in JSON files, or in memory

EXAMPLES:
  taskboard                                     # Open the board
  taskboard add "Write report" -p high --due tomorrow
  taskboard list                                # List every task
  taskboard list report                         # List tasks mentioning "report"
  taskboard done 3f2a                           # Toggle a task by ID prefix
  taskboard edit 3f2a --due 3d                  # Move a due date three days out
  taskboard rm 3f2a                             # Delete after confirmation
  taskboard stats                               # Show the counters

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file:
    TB_CONFIG                              YAML config file (default: ~/.taskboard/config.yaml)

  Storage Configuration:
    TB_STORAGE_DRIVER                      sqlite, file or memory (default: sqlite)
    TB_STORAGE_DIR                         Storage directory (default: ~/.taskboard)
    TB_STORAGE_FILENAME                    Database filename (default: taskboard.db)
    TB_STORAGE_SLOT                        Slot holding the tasks (default: tasks)
    TB_STORAGE_QUERY_TIMEOUT               Query timeout (default: 10s)
    TB_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Board Configuration:
    TB_TIMER_BUDGET                        Countdown length (default: 60m)
    TB_TASK_LATENCY                        Simulated save delay (default: 500ms)
    TB_VALIDATION_TITLE_MAX                Max title length (default: 100)
    TB_VALIDATION_DESCRIPTION_MAX          Max description length (default: 500)
    TB_DISPLAY_DATE_FORMAT                 Due date layout (default: 2006-01-02)

  Application Configuration:
    TB_APP_TIMEOUT                         Command timeout (default: 60s)
    TB_APP_VERBOSE                         Enable debug output (default: false)
    TB_ENV                                 development, testing or production

DUE DATES:
  today, tomorrow, 3d, +3d, 2w, or a date in the configured layout

GETTING HELP:
  taskboard [command] --help               # Get help for any specific command
  taskboard completion bash                # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.app.Run(cmd.Context(), []string{"ui"})
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// SetIO replaces stdin and stdout for the commands
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.cmd.SetOut(out)
}

// SetArgs overrides the command line arguments, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases storage afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// Config returns the configuration loaded for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides TB_CONFIG)")

	// Storage configuration
	flags.String("storage-driver", "", "Storage driver: sqlite, file or memory (overrides TB_STORAGE_DRIVER)")
	flags.String("storage-dir", "", "Storage directory (overrides TB_STORAGE_DIR)")
	flags.String("storage-filename", "", "Database filename (overrides TB_STORAGE_FILENAME)")
	flags.String("slot", "", "Slot holding the tasks (overrides TB_STORAGE_SLOT)")

	// Board configuration
	flags.Duration("timer-budget", 0, "Countdown length (overrides TB_TIMER_BUDGET)")
	flags.Duration("latency", 0, "Simulated save delay (overrides TB_TASK_LATENCY)")
	flags.Int("title-max-length", 0, "Maximum title length (overrides TB_VALIDATION_TITLE_MAX)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TB_VALIDATION_DESCRIPTION_MAX)")
	flags.String("date-format", "", "Due date layout (overrides TB_DISPLAY_DATE_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug output (overrides TB_APP_VERBOSE)")
}

// addTaskFieldFlags binds the task field flags shared by add and edit
func (r *RootCommand) addTaskFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.flags.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&r.flags.Priority, "priority", "p", "", "Priority: high, medium or low (default medium)")
	cmd.Flags().StringVar(&r.flags.Due, "due", "", "Due date: today, tomorrow, 3d, 2w or a date (default today)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// UI command
	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the full-screen board",
		Long:  "Open the interactive board with the countdown timer. This is the default when no command is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The board runs until the user quits, so no command timeout
			return r.app.Run(cmd.Context(), []string{"ui"})
		},
	}

	// Add command
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task. The title is required and is limited to 100 characters by default.
Give it as arguments or with --title, not both.

Examples:
  taskboard add "Buy milk"
  taskboard add --title "Buy milk"
  taskboard add "Ship release" -p high --due 2d -d "Tag and publish"`,
		Args: cobra.ArbitraryArgs,
		RunE: r.runE("add"),
	}
	addCmd.Flags().StringVarP(&r.flags.Title, "title", "t", "", "Task title")
	r.addTaskFieldFlags(addCmd)

	// Edit command
	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
		Long: `Change the title, description, priority or due date of a task.
Only the given flags change; an empty --description clears it.

Examples:
  taskboard edit 3f2a --title "Ship release v2"
  taskboard edit 3f2a -p low --due tomorrow`,
		Args: cobra.ExactArgs(1),
		RunE: r.runE("edit"),
	}
	editCmd.Flags().StringVarP(&r.flags.Title, "title", "t", "", "New title")
	r.addTaskFieldFlags(editCmd)

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle whether a task is completed",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("done"),
	}

	// Remove command
	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Long: `Delete a task. This operation cannot be undone, so you will be asked
to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runE("rm"),
	}
	rmCmd.Flags().BoolVarP(&r.flags.Yes, "yes", "y", false, "Delete without asking")

	// List command
	listCmd := &cobra.Command{
		Use:   "list [text]",
		Short: "List tasks",
		Long: `List tasks: incomplete first, then by priority, then by due date.
Text filters search titles, descriptions and priorities (case-insensitive).

Examples:
  taskboard list            # List all tasks
  taskboard list high       # Tasks with high priority or "high" in the text`,
		RunE: r.runE("list"),
	}

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counters",
		Args:  cobra.NoArgs,
		RunE:  r.runE("stats"),
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		uiCmd,
		addCmd,
		editCmd,
		doneCmd,
		rmCmd,
		listCmd,
		statsCmd,
	)
}

// runE returns a cobra handler that dispatches to the registered command
// under the application timeout
func (r *RootCommand) runE(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			r.flags.MarkSet(f.Name)
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return r.app.Run(ctx, append([]string{name}, args...))
	}
}

// setup loads the configuration with flag overrides and builds the App
func (r *RootCommand) setup(cmd *cobra.Command) error {
	overrides, err := r.getOverridesFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, err := r.loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	app, cleanup, err := r.bootstrap(cmd.Context(), cfg, WithIO(r.in, r.out), WithFlags(r.flags))
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getOverridesFromFlags collects the global flags the user actually set
func (r *RootCommand) getOverridesFromFlags(flags *pflag.FlagSet) (*config.ConfigOverrides, error) {
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string, dst **string) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	durationFlag := func(name string, dst **time.Duration) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetDuration(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	intFlag := func(name string, dst **int) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}

	for _, err := range []error{
		stringFlag("config", &overrides.ConfigFile),
		stringFlag("storage-driver", &overrides.StorageDriver),
		stringFlag("storage-dir", &overrides.StorageDir),
		stringFlag("storage-filename", &overrides.StorageFilename),
		stringFlag("slot", &overrides.StorageSlot),
		durationFlag("timer-budget", &overrides.TimerBudget),
		durationFlag("latency", &overrides.TaskLatency),
		intFlag("title-max-length", &overrides.TitleMaxLength),
		intFlag("description-max-length", &overrides.DescriptionMaxLength),
		stringFlag("date-format", &overrides.DateFormat),
		durationFlag("app-timeout", &overrides.Timeout),
	} {
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return nil, err
		}
		overrides.Verbose = &v
	}

	return overrides, nil
}
