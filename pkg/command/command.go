package command

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner runs external tools. Exec is the real one, tests swap in fakes.
type Runner interface {
	// Output runs the command and returns its stdout
	Output(name string, args ...string) ([]byte, error)
	// Run runs the command and discards its output
	Run(name string, args ...string) error
}

// Exec runs processes with Env layered on top of the parent environment
type Exec struct {
	Env []string
}

// ForDisplay returns a runner whose commands talk to X display :id
func ForDisplay(id string) *Exec {
	return &Exec{Env: []string{"DISPLAY=:" + id}}
}

func (e *Exec) command(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	return cmd
}

func (e *Exec) Output(name string, args ...string) ([]byte, error) {
	cmd := e.command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return output, fmt.Errorf("%s: %w (stderr: %s)", name, err, msg)
		}
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

func (e *Exec) Run(name string, args ...string) error {
	cmd := e.command(name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %w (output: %s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
