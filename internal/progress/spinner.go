package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner wraps briandowns/spinner. On a non-terminal writer it prints
// nothing, so piped output stays clean.
type Spinner struct {
	mu      sync.Mutex
	s       *spinner.Spinner
	out     io.Writer
	symbols ProgressSymbols
	enabled bool
	active  bool
}

// NewSpinner returns a spinner writing to out with the given capabilities.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{out: out, symbols: symbols, enabled: caps.IsTTY}
	if sp.enabled {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(out))
		if caps.SupportsColor {
			_ = sp.s.Color("cyan")
		}
	}
	return sp
}

// Start shows message next to the spinner.
func (sp *Spinner) Start(message string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.enabled || sp.active {
		return
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
	sp.active = true
}

// Success stops the spinner and prints a checkmark line.
func (sp *Spinner) Success(message string) {
	sp.stop(sp.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (sp *Spinner) Fail(message string) {
	sp.stop(sp.symbols.Failure, message)
}

// Stop stops the spinner without a final line.
func (sp *Spinner) Stop() {
	sp.stop("", "")
}

func (sp *Spinner) stop(symbol, message string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.active {
		return
	}
	sp.s.Stop()
	sp.active = false
	if message != "" {
		fmt.Fprintf(sp.out, "%s %s\n", symbol, message)
	}
}
