package command

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Validation failures, kept distinct from the I/O errors produced by
// internal/sysfs so tests (and callers) can tell a rejected value apart
// from a missing or unwritable control file.
var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrInvalidValue      = errors.New("invalid value")
)

// Command is one dispatchable subcommand: a behavior plus the usage text it
// contributes to the help listing. A plain struct of a function and a string
// is all the polymorphism this needs.
type Command struct {
	// Run executes the command. args[0] is the command name itself,
	// args[1] the subcommand, args[2] the optional value.
	Run func(args []string) error

	// Usage is the command's help text, one or more indented lines.
	Usage string
}

// Registry maps command names to their handlers and routes process
// arguments to the right one.
type Registry struct {
	commands map[string]Command
	out      io.Writer
	errOut   io.Writer
}

// NewRegistry builds the dispatch table from an already-complete command
// set. The help command is added here, as a closure over the finished set,
// so it can enumerate every command (itself included) without any
// back-reference or two-phase initialization.
func NewRegistry(cmds map[string]Command, out, errOut io.Writer) *Registry {
	commands := make(map[string]Command, len(cmds)+1)
	for name, cmd := range cmds {
		commands[name] = cmd
	}

	commands["help"] = Command{
		Run: func([]string) error {
			printHelp(out, commands)
			return nil
		},
		Usage: "  help          Show this help message",
	}

	return &Registry{commands: commands, out: out, errOut: errOut}
}

// Dispatch routes the process arguments (os.Args minus the program name) to
// the matching command and returns the process exit code: 0 on success, 1
// on any failure. No command, or an unknown one, prints the full help and
// fails, signaling that usage is required.
func (r *Registry) Dispatch(args []string) int {
	if len(args) == 0 {
		printHelp(r.out, r.commands)
		return 1
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		fmt.Fprintf(r.errOut, "Error: unknown command '%s'\n", args[0])
		printHelp(r.out, r.commands)
		return 1
	}

	if err := cmd.Run(args); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printHelp lists every registered command exactly once, in name order so
// the output is stable between runs.
func printHelp(out io.Writer, commands map[string]Command) {
	fmt.Fprint(out, "Usage: galaxybook <command> [<args>]\n")
	fmt.Fprint(out, "CLI tool to control Samsung Galaxy Book features.\n\n")
	fmt.Fprint(out, "Commands:\n")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintln(out, commands[name].Usage)
	}
}
