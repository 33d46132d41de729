package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"screen-flipper/pkg/globals"
)

const maxLogs = 200

type Entry struct {
	Time  string         `json:"time"`
	Level string         `json:"level,omitempty"`
	Msg   string         `json:"msg"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// writer keeps the last maxLogs lines and persists them on every write
type writer struct {
	mu   sync.Mutex
	path string
	logs []Entry
}

var (
	w     *writer
	level = new(slog.LevelVar)
)

// Init routes slog and the standard log package through a fanout of the
// terminal (unless running as a systemd service), the systemd journal and a
// small JSON log file at logsPath. attrs are added to every record.
func Init(logsPath string, attrs ...any) {
	w = &writer{path: logsPath, logs: load(logsPath)}

	if os.Getenv(globals.DebugEnv) != "" {
		level.Set(slog.LevelDebug)
	}

	handlers := []slog.Handler{
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
	}

	var terminal slog.Handler
	if !isSystemdService() {
		terminal = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		handlers = append(handlers, terminal)
	}

	journal, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		if terminal != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		}
	} else {
		handlers = append(handlers, journal)
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)).With(attrs...))
}

func (wr *writer) Write(p []byte) (int, error) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	wr.logs = append(wr.logs, parseEntry(p))

	if len(wr.logs) > maxLogs {
		wr.logs = wr.logs[len(wr.logs)-maxLogs:]
	}

	save(wr.path, wr.logs)
	return len(p), nil
}

// parseEntry turns one slog JSON record into an Entry. Anything that is not a
// record is kept verbatim as the message.
func parseEntry(p []byte) Entry {
	line := strings.TrimRight(string(p), "\n")
	e := Entry{Time: time.Now().Format("15:04:05"), Msg: line}

	var record map[string]any
	if json.Unmarshal([]byte(line), &record) != nil {
		return e
	}
	msg, ok := record[slog.MessageKey].(string)
	if !ok {
		return e
	}
	e.Msg = msg
	if lvl, ok := record[slog.LevelKey].(string); ok {
		e.Level = lvl
	}
	if ts, ok := record[slog.TimeKey].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = t.Format("15:04:05")
		}
	}
	for _, key := range []string{slog.MessageKey, slog.LevelKey, slog.TimeKey} {
		delete(record, key)
	}
	if len(record) > 0 {
		e.Attrs = record
	}
	return e
}

func GetLogs() []Entry {
	if w == nil {
		return []Entry{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Entry{}, w.logs...)
}

func load(logsPath string) []Entry {
	data, err := os.ReadFile(logsPath)
	if err != nil {
		return []Entry{}
	}
	var logs []Entry
	if json.Unmarshal(data, &logs) != nil {
		return []Entry{}
	}
	return logs
}

func save(logsPath string, logs []Entry) {
	data, _ := json.Marshal(logs)
	os.WriteFile(logsPath, data, 0644)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		// hierarchy-ID:controller-list:cgroup-path
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		if strings.HasSuffix(parts[2], ".service") || strings.HasSuffix(path.Dir(parts[2]), ".service") {
			return true
		}
	}
	return false
}
