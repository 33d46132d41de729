// Package commandtest provides a command.Runner that records calls instead of
// running anything.
package commandtest

import (
	"fmt"
	"strings"
	"sync"
)

type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Recorder answers each command from Outputs/Errors keyed by the command name
type Recorder struct {
	mu      sync.Mutex
	Calls   []Call
	Outputs map[string]string
	Errors  map[string]error
}

func New() *Recorder {
	return &Recorder{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

func (r *Recorder) record(name string, args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Name: name, Args: append([]string{}, args...)})
	return r.Errors[name]
}

func (r *Recorder) Output(name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return []byte(r.Outputs[name]), nil
}

func (r *Recorder) Run(name string, args ...string) error {
	if err := r.record(name, args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Commands returns every recorded call as a single line
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		lines[i] = c.String()
	}
	return lines
}
