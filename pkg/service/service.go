package service

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"screen-flipper/pkg/command"
	"screen-flipper/pkg/globals"
)

// Unit is the boot reset service. A flip does not survive a reboot but the
// touch calibration can end up wrong, so the service forces the normal
// orientation once the graphical session is up.
type Unit struct {
	ExecPath   string
	ConfigPath string
	DisplayID  string
	// Desktop session owner. X only lets clients holding its cookie in,
	// so the service runs as that user with XAUTHORITY pointing at it.
	User       string
	XAuthority string
}

// X is not up yet when graphical.target is reached, failed starts are
// retried until the session accepts clients
const (
	restartSec = 3
	startLimit = 20
)

func (u Unit) String() string {
	var b strings.Builder
	b.WriteString(`[Unit]
Description=Screen Flipper - reset screen and touch orientation
After=graphical.target display-manager.service
Wants=graphical.target
`)
	fmt.Fprintf(&b, "StartLimitIntervalSec=%d\n", restartSec*startLimit*2)
	fmt.Fprintf(&b, "StartLimitBurst=%d\n", startLimit)
	b.WriteString(`
[Service]
Type=oneshot
`)
	if u.User != "" {
		fmt.Fprintf(&b, "User=%s\n", u.User)
	}
	fmt.Fprintf(&b, "Environment=DISPLAY=:%s\n", u.DisplayID)
	if u.XAuthority != "" {
		fmt.Fprintf(&b, "Environment=XAUTHORITY=%s\n", u.XAuthority)
	}
	fmt.Fprintf(&b, "Environment=%s=%s\n", globals.ConfigEnv, u.ConfigPath)
	fmt.Fprintf(&b, "ExecStart=%s --reset\n", quote(u.ExecPath))
	fmt.Fprintf(&b, "Restart=on-failure\nRestartSec=%d\n", restartSec)
	b.WriteString(`RemainAfterExit=yes

[Install]
WantedBy=graphical.target
`)
	return b.String()
}

// SessionUser returns the user the service should run as and that user's X
// cookie file. Under sudo that is SUDO_USER, otherwise the current user.
// Root gets no User= line, it can only reach X if the session allows it.
func SessionUser() (name, xauthority string, err error) {
	var u *user.User
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err = user.Lookup(sudoUser)
	} else {
		u, err = user.Current()
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to look up session user: %w", err)
	}
	if u.Uid == "0" {
		return "", "", nil
	}
	return u.Username, filepath.Join(u.HomeDir, ".Xauthority"), nil
}

// systemd needs quoting for paths with spaces
func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// Install writes the unit to unitPath and enables it with systemctl
func Install(runner command.Runner, unitPath string, u Unit) error {
	if !filepath.IsAbs(u.ExecPath) {
		return fmt.Errorf("executable path %q is not absolute", u.ExecPath)
	}

	if err := os.WriteFile(unitPath, []byte(u.String()), 0644); err != nil {
		return fmt.Errorf("failed to write systemd service: %w", err)
	}

	if err := runner.Run("systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}

	name := filepath.Base(unitPath)
	if err := runner.Run("systemctl", "enable", name); err != nil {
		return fmt.Errorf("failed to enable %s: %w", name, err)
	}

	log.Printf("Installed and enabled %s", name)
	return nil
}
