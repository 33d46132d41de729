package orientation

import (
	"reflect"
	"testing"
)

func TestOrientation(t *testing.T) {
	tests := []struct {
		o        Orientation
		keyword  string
		args     []string
		opposite Orientation
	}{
		{Normal, "normal", []string{"1", "0", "0", "0", "1", "0", "0", "0", "1"}, Inverted},
		{Inverted, "inverted", []string{"-1", "0", "1", "0", "-1", "1", "0", "0", "1"}, Normal},
	}

	for _, test := range tests {
		if got := test.o.String(); got != test.keyword {
			t.Errorf("%d: expected keyword %q, got %q", test.o, test.keyword, got)
		}
		if got := test.o.Args(); !reflect.DeepEqual(got, test.args) {
			t.Errorf("%s: expected args %v, got %v", test.o, test.args, got)
		}
		if got := test.o.Opposite(); got != test.opposite {
			t.Errorf("%s: expected opposite %s, got %s", test.o, test.opposite, got)
		}
	}
}

func TestUnknownString(t *testing.T) {
	if got := Orientation(7).String(); got != "unknown(7)" {
		t.Fatalf("got %q", got)
	}
}
