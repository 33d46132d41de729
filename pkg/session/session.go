package session

import (
	"fmt"
	"log"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

var xServers = map[string]bool{
	"Xorg":      true,
	"X":         true,
	"Xwayland":  true,
	"Xvfb":      true,
	"Xtigervnc": true,
}

type Proc struct {
	PID  int32
	Name string
	Args []string
}

// ServesDisplay reports whether p is an X server for display :displayID.
// A server started without a display argument owns :0.
func ServesDisplay(p Proc, displayID string) bool {
	if !xServers[filepath.Base(p.Name)] {
		return false
	}
	for _, arg := range p.Args[min(1, len(p.Args)):] {
		if strings.HasPrefix(arg, ":") {
			return arg == ":"+displayID
		}
	}
	return displayID == "0"
}

// FindXServer looks for a running X server process for display :displayID
func FindXServer(displayID string) (Proc, bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return Proc{}, false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !xServers[name] {
			continue
		}
		args, err := p.CmdlineSlice()
		if err != nil {
			continue
		}
		candidate := Proc{PID: p.Pid, Name: name, Args: args}
		if ServesDisplay(candidate, displayID) {
			return candidate, true, nil
		}
	}

	return Proc{}, false, nil
}

// Check warns when no X server is found for the display. It never fails,
// xrandr and xinput report their own errors.
func Check(displayID string) {
	if info, err := host.Info(); err == nil {
		slog.Debug("host",
			"hostname", info.Hostname,
			"platform", info.Platform,
			"platformVersion", info.PlatformVersion,
			"kernel", info.KernelVersion,
		)
	}

	proc, ok, err := FindXServer(displayID)
	if err != nil {
		log.Printf("Warning: could not check X server: %v", err)
		return
	}
	if !ok {
		log.Printf("Warning: no X server found for display :%s", displayID)
		return
	}
	slog.Debug("x server", "pid", proc.PID, "name", proc.Name)
}
