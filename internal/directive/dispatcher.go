// Package directive maps configuration keywords to handlers and implements
// the set directive, which assigns typed values to declared options.
package directive

import (
	"fmt"

	"github.com/eugenenazirov/rcopts/internal/options"
)

// Handler processes the remainder of a line after its keyword.
type Handler func(remainder string) error

// Directive pairs a keyword with its handler.
type Directive struct {
	Keyword string
	Handler Handler
}

// Dispatcher routes keywords to handlers in registration order.
type Dispatcher struct {
	directives []Directive
}

// NewDispatcher returns a dispatcher with the set directive bound to reg and store.
func NewDispatcher(reg *options.Registry, store options.Setter) *Dispatcher {
	d := &Dispatcher{}
	if err := d.Register("set", NewSetHandler(reg, store)); err != nil {
		panic(err)
	}
	return d
}

// Register adds a directive. Keywords are matched exactly and must be unique.
func (d *Dispatcher) Register(keyword string, handler Handler) error {
	if keyword == "" || handler == nil {
		return fmt.Errorf("directive: keyword and handler are required")
	}
	for _, dir := range d.directives {
		if dir.Keyword == keyword {
			return fmt.Errorf("%w: %s", ErrDuplicateDirective, keyword)
		}
	}
	d.directives = append(d.directives, Directive{Keyword: keyword, Handler: handler})
	return nil
}

// Dispatch runs the handler registered for keyword with remainder.
// Unregistered keywords yield an error wrapping ErrUnknownToken.
func (d *Dispatcher) Dispatch(keyword, remainder string) error {
	for _, dir := range d.directives {
		if dir.Keyword == keyword {
			return dir.Handler(remainder)
		}
	}
	return fmt.Errorf("%w %s", ErrUnknownToken, keyword)
}

// Keywords lists the registered keywords.
func (d *Dispatcher) Keywords() []string {
	out := make([]string, 0, len(d.directives))
	for _, dir := range d.directives {
		out = append(out, dir.Keyword)
	}
	return out
}
