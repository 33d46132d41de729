package session

import "testing"

func TestServesDisplay(t *testing.T) {
	tests := []struct {
		name    string
		proc    Proc
		display string
		want    bool
	}{
		{"xorg explicit", Proc{Name: "Xorg", Args: []string{"/usr/lib/xorg/Xorg", ":0", "-seat", "seat0"}}, "0", true},
		{"xorg other display", Proc{Name: "Xorg", Args: []string{"/usr/lib/xorg/Xorg", ":1"}}, "0", false},
		{"xorg implicit :0", Proc{Name: "Xorg", Args: []string{"/usr/lib/xorg/Xorg", "-nolisten", "tcp"}}, "0", true},
		{"xorg implicit not :1", Proc{Name: "Xorg", Args: []string{"Xorg"}}, "1", false},
		{"xvfb", Proc{Name: "Xvfb", Args: []string{"Xvfb", ":99", "-screen", "0", "1024x600x24"}}, "99", true},
		{"not an x server", Proc{Name: "bash", Args: []string{"bash", ":0"}}, "0", false},
		{"full path name", Proc{Name: "/usr/bin/Xwayland", Args: []string{"Xwayland", ":0"}}, "0", true},
		{"no args", Proc{Name: "X"}, "0", true},
	}

	for _, test := range tests {
		if got := ServesDisplay(test.proc, test.display); got != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, got)
		}
	}
}

func TestFindXServerDoesNotFail(t *testing.T) {
	if _, _, err := FindXServer("4242"); err != nil {
		t.Fatalf("listing processes failed: %v", err)
	}
}
