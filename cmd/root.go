// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/registry"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
	})

	// Determine the subcommand. No command prints usage.
	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stdout)
		return nil
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	// Execute the subcommand
	switch subcommand {
	case "add", "a":
		return addCommand(cfg, logger, remainingArgs)
	case "list", "l":
		return listCommand(cfg, logger, remainingArgs)
	case "update", "u":
		return updateCommand(cfg, logger, remainingArgs)
	case "remove", "r":
		return removeCommand(cfg, logger, remainingArgs)
	case "mark-done", "md":
		return markCommand(cfg, logger, task.StatusDone, remainingArgs)
	case "mark-todo", "mt":
		return markCommand(cfg, logger, task.StatusTodo, remainingArgs)
	case "mark-in-progress", "mi":
		return markCommand(cfg, logger, task.StatusInProgress, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger)
	case "version":
		return versionCommand()
	case "help", "h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openRegistry loads the task collection behind cfg's tasks file.
func openRegistry(cfg *config.Config, logger *log.Logger) (*registry.Registry, error) {
	st := store.New(cfg.TasksFile)
	reg, err := registry.New(st)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded tasks", "file", st.Path(), "count", reg.Len())
	return reg, nil
}

// renderer builds the output renderer, honoring the no-color setting
// and whether stdout is a terminal.
func renderer(cfg *config.Config) *ui.Renderer {
	return ui.NewRenderer(!cfg.NoColor && ui.IsTTY(os.Stdout))
}

// addCommand creates a new task from the remaining arguments.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	t, err := reg.Add(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Added task %s\n", t.ID)
	fmt.Println(renderer(cfg).Task(t))
	return nil
}

// listCommand prints tasks, optionally filtered by status.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck list", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status ("+task.StatusNames()+")")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Print(renderer(cfg).List(reg.List(*statusFilter)))
	return nil
}

// updateCommand replaces a task's description.
func updateCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck update <id> <description>")
	}
	id := args[0]

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	t, err := reg.SetDescription(id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Printf("Updated task %s\n", t.ID)
	fmt.Println(renderer(cfg).Task(t))
	return nil
}

// removeCommand deletes a task by id.
func removeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck remove <id>")
	}

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	if err := reg.Remove(args[0]); err != nil {
		return err
	}

	fmt.Printf("Removed task %s\n", args[0])
	return nil
}

// markCommand moves a task to the given status.
func markCommand(cfg *config.Config, logger *log.Logger, status task.Status, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck mark-%s <id>", status)
	}

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	t, err := reg.SetStatus(args[0], status)
	if err != nil {
		return err
	}

	fmt.Println(renderer(cfg).Task(t))
	return nil
}

// tuiCommand launches the interactive viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, reg, renderer(cfg))
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>          Add a new task (alias: a)")
	fmt.Fprintln(w, "  list [status]              List tasks, optionally by status (alias: l)")
	fmt.Fprintln(w, "  update <id> <description>  Replace a task's description (alias: u)")
	fmt.Fprintln(w, "  remove <id>                Remove a task (alias: r)")
	fmt.Fprintln(w, "  mark-done <id>             Mark a task done (alias: md)")
	fmt.Fprintln(w, "  mark-todo <id>             Mark a task todo (alias: mt)")
	fmt.Fprintln(w, "  mark-in-progress <id>      Mark a task in progress (alias: mi)")
	fmt.Fprintln(w, "  tui                        Launch the interactive viewer")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message (alias: h)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
