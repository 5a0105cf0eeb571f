// Package notify blocks the user after a configuration load that reported
// errors, so diagnostics stay visible before the application takes over the
// terminal.
package notify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultMessage is printed by KeyPrompt before it waits.
const DefaultMessage = "Press any key to continue..."

// Notifier is told once that a load finished with errors.
type Notifier interface {
	Notify() error
}

// Func adapts a plain function to Notifier.
type Func func() error

// Notify calls f.
func (f Func) Notify() error {
	return f()
}

// Nop never blocks.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify() error { return nil }

// KeyPrompt prints a message and waits for a single key.
type KeyPrompt struct {
	in      io.Reader
	out     io.Writer
	message string
}

// NewKeyPrompt returns a prompt reading from in and writing to out.
func NewKeyPrompt(in io.Reader, out io.Writer) *KeyPrompt {
	return &KeyPrompt{in: in, out: out, message: DefaultMessage}
}

// Notify prints the message and blocks until one byte is read. When in is a
// terminal it is switched to raw mode so no Enter is needed. End of input
// releases the prompt.
func (p *KeyPrompt) Notify() error {
	if _, err := fmt.Fprintln(p.out, p.message); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	if f, ok := p.in.(*os.File); ok && IsTerminal(f) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err == nil {
			defer func() {
				_ = term.Restore(fd, state)
			}()
		}
	}

	buf := make([]byte, 1)
	if _, err := p.in.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read key: %w", err)
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
