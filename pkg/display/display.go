package display

import (
	"fmt"
	"strconv"

	"screen-flipper/pkg/command"
	"screen-flipper/pkg/globals"
	"screen-flipper/pkg/orientation"
)

// Controller rotates the screen and remaps touch input to match
type Controller interface {
	SetRotation(o orientation.Orientation) error
	SetCalibration(deviceID int, o orientation.Orientation) error
}

// XController drives xrandr and xinput on one X output
type XController struct {
	runner command.Runner
	output string
}

func NewXController(runner command.Runner, output string) *XController {
	return &XController{runner: runner, output: output}
}

func (x *XController) SetRotation(o orientation.Orientation) error {
	if err := x.runner.Run("xrandr", "--output", x.output, "--rotate", o.String()); err != nil {
		return fmt.Errorf("failed to rotate %s to %s: %w", x.output, o, err)
	}
	return nil
}

func (x *XController) SetCalibration(deviceID int, o orientation.Orientation) error {
	args := append([]string{"--set-prop", strconv.Itoa(deviceID), globals.CalibrationProperty}, o.Args()...)
	if err := x.runner.Run("xinput", args...); err != nil {
		return fmt.Errorf("failed to calibrate touch device %d for %s: %w", deviceID, o, err)
	}
	return nil
}
