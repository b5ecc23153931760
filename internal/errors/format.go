package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a rendered CLIError.
type palette struct {
	label, message, category func(a ...any) string
	usageLabel, usage        func(a ...any) string
	fix, bullet              func(a ...any) string
}

var (
	colored = palette{
		label:      color.New(color.FgRed, color.Bold).SprintFunc(),
		message:    color.New(color.FgRed).SprintFunc(),
		category:   color.New(color.FgYellow).SprintFunc(),
		usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
		usage:      color.New(color.FgCyan).SprintFunc(),
		fix:        color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:     color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint,
		usageLabel: fmt.Sprint, usage: fmt.Sprint,
		fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

// FormatError renders err for the terminal, colored unless color is
// disabled (--no-color, NO_COLOR or no TTY).
func FormatError(err *CLIError) string {
	if color.NoColor {
		return formatError(err, plain)
	}
	return formatError(err, colored)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	return formatError(err, plain)
}

func formatError(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w. A wrapped CLIError keeps its category and
// remediation; any other error is shown as a Runtime error.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	FprintError(w, &CLIError{Category: Runtime, Message: err.Error(), Err: err})
}
