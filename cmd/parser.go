package cmd

import (
	"fmt"
	"strings"

	"noticeboard/internal/version"

	"charm.land/lipgloss/v2"
	"github.com/spf13/pflag"
)

var (
	cmdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ParseError wraps argument parsing errors with the command line and a
// marker under the failing argument.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "open")
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{cmdStyle.Render(version.CommandName)}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		if i == e.Index {
			cmdLineParts = append(cmdLineParts, errStyle.Render(e.Args[i]))
		} else {
			cmdLineParts = append(cmdLineParts, cmdStyle.Render(e.Args[i]))
		}
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// indent + ' + command name + space + previous args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + markerStyle.Render("^")

	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", "'"+cmdStyle.Render(e.FailingCommand)+"'",
		"%o", "'"+cmdStyle.Render(failingOpt)+"'",
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(GetUsage(e.FailingCommand), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '%s' for usage.\n", indent, cmdStyle.Render(version.CommandName+" --help"))
	}
	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// modifiers apply to the command that follows them.
var modifiers = map[string]bool{
	"-v": true, "--verbose": true,
	"-x": true, "--debug": true,
	"--dry-run": true,
}

// valueModifiers take one argument, given as the next word or after "=".
var valueModifiers = map[string]bool{
	"--api":  true,
	"--link": true,
}

// Parse splits the command line into groups. Flags before a command apply
// to that command only; trailing flags form a group without a command,
// which runs the TUI.
func Parse(args []string) ([]CommandGroup, error) {
	InitFlags()

	// Expand combined short flags (e.g. -vx -> -v -x)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if modifiers[arg] {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			lastCommand = arg
			i++
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if valueModifiers[name] {
			lastCommand = name
			if !hasValue {
				if i+1 >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i+1], "-") {
					return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: name, Message: fmt.Sprintf("Option %s requires an argument.", name)}
				}
				value = expandedArgs[i+1]
				i++
			}
			if strings.TrimSpace(value) == "" {
				return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: name, Message: "Option %c requires a non-empty argument."}
			}
			currentGroup.Flags = append(currentGroup.Flags, name+"="+value)
			i++
			continue
		}

		// Word commands
		if arg == "open" {
			currentGroup.Command = arg
			lastCommand = arg
			i++
			if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: arg, Message: "Command %c requires a link."}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
			i++
			groups = append(groups, currentGroup)
			currentGroup = CommandGroup{}
			continue
		}

		if !strings.HasPrefix(arg, "-") {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o", FailingCommand: lastCommand}
		}

		cmdName := strings.TrimLeft(name, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(name, "--") {
			validFlag = pflag.Lookup(cmdName)
		} else if len(cmdName) == 1 {
			validFlag = pflag.CommandLine.ShorthandLookup(cmdName)
		}
		if validFlag == nil {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = arg
		lastCommand = arg
		i++

		switch arg {
		case "-h", "--help":
			// optional topic: the next flag or command word
			if i < len(expandedArgs) && (strings.HasPrefix(expandedArgs[i], "-") || expandedArgs[i] == "open") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}
	return groups, nil
}
