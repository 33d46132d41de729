package service

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"screen-flipper/pkg/command/commandtest"
)

func TestUnitText(t *testing.T) {
	u := Unit{
		ExecPath:   "/usr/local/bin/screen-flipper",
		ConfigPath: "/etc/screen-flipper/config.json",
		DisplayID:  "0",
		User:       "pi",
		XAuthority: "/home/pi/.Xauthority",
	}
	text := u.String()

	for _, want := range []string{
		"ExecStart=/usr/local/bin/screen-flipper --reset\n",
		"Environment=DISPLAY=:0\n",
		"Environment=SCREEN_FLIPPER_CONFIG=/etc/screen-flipper/config.json\n",
		"User=pi\n",
		"Environment=XAUTHORITY=/home/pi/.Xauthority\n",
		"Restart=on-failure\n",
		"Type=oneshot\n",
		"WantedBy=graphical.target\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("unit is missing %q:\n%s", want, text)
		}
	}

	// User= belongs to the [Service] section
	if strings.Index(text, "User=") < strings.Index(text, "[Service]") {
		t.Errorf("User= outside [Service]:\n%s", text)
	}
}

func TestUnitWithoutUser(t *testing.T) {
	text := Unit{ExecPath: "/usr/local/bin/screen-flipper", DisplayID: "0"}.String()
	if strings.Contains(text, "User=") || strings.Contains(text, "XAUTHORITY") {
		t.Fatalf("root unit should not set a user:\n%s", text)
	}
}

func TestSessionUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}

	for _, sudoUser := range []string{"", current.Username} {
		t.Setenv("SUDO_USER", sudoUser)

		name, xauth, err := SessionUser()
		if err != nil {
			t.Fatalf("SUDO_USER=%q: %v", sudoUser, err)
		}
		if current.Uid == "0" {
			if name != "" || xauth != "" {
				t.Errorf("SUDO_USER=%q: root should give no user, got %q %q", sudoUser, name, xauth)
			}
			continue
		}
		if name != current.Username || xauth != filepath.Join(current.HomeDir, ".Xauthority") {
			t.Errorf("SUDO_USER=%q: got %q %q", sudoUser, name, xauth)
		}
	}
}

func TestSessionUserUnknown(t *testing.T) {
	t.Setenv("SUDO_USER", "screen-flipper-no-such-user")
	if _, _, err := SessionUser(); err == nil {
		t.Fatal("expected lookup error")
	}
}

func TestUnitQuotesPath(t *testing.T) {
	u := Unit{ExecPath: "/opt/screen flipper/bin", DisplayID: "1"}
	if !strings.Contains(u.String(), `ExecStart="/opt/screen flipper/bin" --reset`) {
		t.Fatalf("path not quoted:\n%s", u)
	}
}

func TestInstall(t *testing.T) {
	unitPath := filepath.Join(t.TempDir(), "screen-flipper-reset.service")
	runner := commandtest.New()
	u := Unit{ExecPath: "/usr/local/bin/screen-flipper", ConfigPath: "/etc/screen-flipper/config.json", DisplayID: "0"}

	if err := Install(runner, unitPath, u); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(unitPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != u.String() {
		t.Fatalf("unexpected unit file:\n%s", data)
	}

	want := []string{"systemctl daemon-reload", "systemctl enable screen-flipper-reset.service"}
	if got := runner.Commands(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestInstallErrors(t *testing.T) {
	dir := t.TempDir()

	runner := commandtest.New()
	if err := Install(runner, filepath.Join(dir, "a.service"), Unit{ExecPath: "screen-flipper"}); err == nil {
		t.Error("relative exec path should fail")
	}

	runner.Errors["systemctl"] = errors.New("exit status 1")
	if err := Install(runner, filepath.Join(dir, "b.service"), Unit{ExecPath: "/bin/x"}); err == nil {
		t.Error("systemctl failure should fail")
	}

	if err := Install(commandtest.New(), filepath.Join(dir, "missing", "c.service"), Unit{ExecPath: "/bin/x"}); err == nil {
		t.Error("unwritable unit path should fail")
	}
}
