package touch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"screen-flipper/pkg/command"
)

// ErrDeviceNotFound means no line of `xinput list` matched the touch pattern
var ErrDeviceNotFound = errors.New("touchscreen not found in xinput list")

// CommandError means `xinput list` itself could not run or exited non-zero
type CommandError struct {
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("error executing xinput list: %v", e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Resolve runs `xinput list` and returns the id captured by pattern
func Resolve(runner command.Runner, pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid touch device pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return 0, fmt.Errorf("touch device pattern %q has no capture group for the id", pattern)
	}

	output, err := runner.Output("xinput", "list")
	if err != nil {
		return 0, &CommandError{Err: err}
	}

	return parseID(re, string(output))
}

func parseID(re *regexp.Regexp, output string) (int, error) {
	match := re.FindStringSubmatch(output)
	if len(match) < 2 {
		return 0, ErrDeviceNotFound
	}

	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("touch device id %q is not a number: %w", match[1], err)
	}
	return id, nil
}
