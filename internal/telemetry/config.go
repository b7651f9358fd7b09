package telemetry

import (
	"os"
	"sync"
)

const defaultEventsDir = ".gudang"

var (
	mu      sync.RWMutex
	enabled bool
	dir     = defaultEventsDir
)

// The environment sets the startup values; Configure replaces them.
func init() {
	enabled = os.Getenv("GUDANG_OBSERVE_JSON") == "1"
	if v := os.Getenv("GUDANG_EVENTS_DIR"); v != "" {
		dir = v
	}
}

// Configure turns JSONL emission on or off and sets the events directory.
// An empty eventsDir keeps the current one.
func Configure(on bool, eventsDir string) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
	if eventsDir != "" {
		dir = eventsDir
	}
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// EventsDir returns the directory events.jsonl is written to.
func EventsDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return dir
}
