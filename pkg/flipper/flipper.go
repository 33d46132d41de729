package flipper

import (
	"fmt"
	"log"

	"screen-flipper/pkg/command"
	"screen-flipper/pkg/display"
	"screen-flipper/pkg/orientation"
	"screen-flipper/pkg/state"
	"screen-flipper/pkg/touch"
)

// Locker is implemented by stores that can serialize toggles across processes
type Locker interface {
	Lock() (unlock func(), err error)
}

type Flipper struct {
	runner       command.Runner
	touchPattern string
	display      display.Controller
	store        state.Store
}

func New(runner command.Runner, touchPattern string, ctrl display.Controller, store state.Store) *Flipper {
	return &Flipper{
		runner:       runner,
		touchPattern: touchPattern,
		display:      ctrl,
		store:        store,
	}
}

// TouchDeviceID resolves the touch controller id from `xinput list`
func (f *Flipper) TouchDeviceID() (int, error) {
	id, err := touch.Resolve(f.runner, f.touchPattern)
	if err != nil {
		return 0, fmt.Errorf("failed to obtain touch screen ID: %w", err)
	}
	return id, nil
}

// Apply rotates the screen and recalibrates touch input. Nothing is changed
// when the touch device cannot be resolved.
func (f *Flipper) Apply(o orientation.Orientation) error {
	id, err := f.TouchDeviceID()
	if err != nil {
		return err
	}
	f.apply(id, o)
	return nil
}

// Rotation and calibration are best-effort, failures are only logged
func (f *Flipper) apply(deviceID int, o orientation.Orientation) {
	log.Printf("Applying %s orientation (touch device %d)", o, deviceID)

	if err := f.display.SetRotation(o); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := f.display.SetCalibration(deviceID, o); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// Reset applies the normal orientation. The marker is left as it is, so the
// next Toggle still follows the marker rather than what is on screen.
func (f *Flipper) Reset() error {
	return f.Apply(orientation.Normal)
}

// Toggle flips to the orientation opposite the stored one and records it
func (f *Flipper) Toggle() (orientation.Orientation, error) {
	if l, ok := f.store.(Locker); ok {
		unlock, err := l.Lock()
		if err != nil {
			return orientation.Normal, err
		}
		defer unlock()
	}

	id, err := f.TouchDeviceID()
	if err != nil {
		return orientation.Normal, err
	}

	current, err := f.Current()
	if err != nil {
		return orientation.Normal, err
	}

	next := current.Opposite()
	if next == orientation.Inverted {
		err = f.store.Set()
	} else {
		err = f.store.Clear()
	}
	if err != nil {
		return current, err
	}

	f.apply(id, next)
	return next, nil
}

// Current returns the orientation recorded by the store
func (f *Flipper) Current() (orientation.Orientation, error) {
	flipped, err := f.store.Exists()
	if err != nil {
		return orientation.Normal, err
	}
	if flipped {
		return orientation.Inverted, nil
	}
	return orientation.Normal, nil
}
