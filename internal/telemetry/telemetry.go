// Package telemetry appends command execution events to a JSONL file.
// Events carry execution metadata only, never item names or quantities.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventsFile is the name of the JSONL file inside EventsDir.
const EventsFile = "events.jsonl"

// CommandEvent describes one handled command.
type CommandEvent struct {
	InteractionID string `json:"interaction_id,omitempty"`
	Command       string `json:"command"`
	Outcome       string `json:"outcome"`
	Refresh       string `json:"refresh"`
	DurationMS    int64  `json:"duration_ms"`
	ReplySize     int    `json:"reply_size"`
}

type record struct {
	Time  string `json:"time"`
	Event string `json:"event"`
	CommandEvent
}

// RecordCommand appends ev as a "command_exec" line when emission is on.
// Write failures are reported on stderr and otherwise ignored.
func RecordCommand(ev CommandEvent) {
	if !ObserveEnabled() {
		return
	}
	b, err := json.Marshal(record{
		Time:         time.Now().UTC().Format(time.RFC3339Nano),
		Event:        "command_exec",
		CommandEvent: ev,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}
	if err := appendLine(EventsDir(), b); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: %v\n", err)
	}
}

func appendLine(dir string, line []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, EventsFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
