package orientation

import "strconv"

type Orientation int

const (
	Normal Orientation = iota
	Inverted
)

// String returns the xrandr rotation keyword
func (o Orientation) String() string {
	switch o {
	case Normal:
		return "normal"
	case Inverted:
		return "inverted"
	default:
		return "unknown(" + strconv.Itoa(int(o)) + ")"
	}
}

// Matrix returns the row-major touch calibration matrix that keeps touch
// coordinates aligned with the rotated screen
func (o Orientation) Matrix() [9]float64 {
	switch o {
	case Inverted:
		// point reflection through the center
		return [9]float64{-1, 0, 1, 0, -1, 1, 0, 0, 1}
	default:
		return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
}

// Args formats Matrix as xinput arguments
func (o Orientation) Args() []string {
	m := o.Matrix()
	args := make([]string, len(m))
	for i, v := range m {
		args[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return args
}

func (o Orientation) Opposite() Orientation {
	if o == Inverted {
		return Normal
	}
	return Inverted
}
