package telemetry_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/gudang-bot/internal/telemetry"
)

// enableIn turns emission on into dir for the duration of the test and
// returns the path of the events file.
func enableIn(t *testing.T, dir string) string {
	t.Helper()
	prevOn, prevDir := telemetry.ObserveEnabled(), telemetry.EventsDir()
	t.Cleanup(func() { telemetry.Configure(prevOn, prevDir) })
	telemetry.Configure(true, dir)
	return filepath.Join(dir, telemetry.EventsFile)
}

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var events []map[string]any
	for i, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line %d invalid JSON: %v", i+1, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestRecordCommand_OffByDefault(t *testing.T) {
	// The child starts with GUDANG_OBSERVE_JSON=0 and must not write anything.
	dir := t.TempDir()
	cmd := exec.Command(os.Args[0], "-test.run=^TestRecordCommandGatingChild$")
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "GUDANG_OBSERVE_JSON=0", "GUDANG_EVENTS_DIR=")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("subprocess error: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "no_file=true") {
		t.Fatalf("expected no_file=true, got output:\n%s", out)
	}
}

func TestRecordCommandGatingChild(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	telemetry.RecordCommand(telemetry.CommandEvent{Command: "help"})
	_, err := os.Stat(filepath.Join(".gudang", telemetry.EventsFile))
	if os.IsNotExist(err) {
		println("no_file=true")
	} else {
		println("no_file=false")
	}
}

func TestRecordCommand_AppendsOneLinePerCommand(t *testing.T) {
	path := enableIn(t, t.TempDir())

	telemetry.RecordCommand(telemetry.CommandEvent{
		InteractionID: "itx-1", Command: "deposit", Outcome: "ok",
		Refresh: "not_required", DurationMS: 3, ReplySize: 41,
	})
	telemetry.RecordCommand(telemetry.CommandEvent{Command: "help", Outcome: "ok", Refresh: "not_required"})

	events := readEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	want := map[string]any{
		"event": "command_exec", "interaction_id": "itx-1", "command": "deposit",
		"outcome": "ok", "refresh": "not_required", "duration_ms": float64(3), "reply_size": float64(41),
	}
	for k, v := range want {
		if first[k] != v {
			t.Errorf("%s: got %v want %v", k, first[k], v)
		}
	}
	ts, ok := first["time"].(string)
	if !ok {
		t.Fatal("expected time field as string")
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("time field not RFC3339Nano: %v", err)
	}
	if _, ok := events[1]["interaction_id"]; ok {
		t.Errorf("empty interaction id should be omitted: %#v", events[1])
	}
}

func TestRecordCommand_DisabledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := enableIn(t, dir)
	telemetry.Configure(false, "")

	telemetry.RecordCommand(telemetry.CommandEvent{Command: "help"})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no events file, got err=%v", err)
	}
}

func TestRecordCommand_FailuresAreSwallowed(t *testing.T) {
	t.Run("read-only directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "events")
		if err := os.Mkdir(dir, 0o555); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(dir, 0o755) })
		enableIn(t, dir)
		telemetry.RecordCommand(telemetry.CommandEvent{Command: "help"})
	})

	t.Run("read-only file stays empty", func(t *testing.T) {
		path := enableIn(t, t.TempDir())
		if err := os.WriteFile(path, nil, 0o444); err != nil {
			t.Fatal(err)
		}
		telemetry.RecordCommand(telemetry.CommandEvent{Command: "help"})
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() != 0 {
			t.Fatalf("expected size 0, got %d", fi.Size())
		}
	})
}
