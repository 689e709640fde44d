// Package telemetry emits opt-in JSONL diagnostics.
//
// When OFFICEPAL_OBSERVE_JSON=1, Emit appends one JSON object per event
// to .officepal/events.jsonl under the working directory. Disabled (the
// default), every call is a no-op. Telemetry failures are reported to
// stderr and never affect turn results.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	sinkDir  = ".officepal"
	sinkFile = "events.jsonl"
)

// Enabled reports whether JSONL emission is switched on.
func Enabled() bool {
	return os.Getenv("OFFICEPAL_OBSERVE_JSON") == "1"
}

// Err normalizes an error into a JSON-friendly field value.
func Err(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}

// Emit appends one event line, augmenting fields with the event name and
// an RFC3339Nano timestamp. The caller's map is not mutated.
func Emit(name string, fields map[string]any) {
	if !Enabled() {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}
	if err := os.MkdirAll(sinkDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", sinkDir, err)
		return
	}
	path := filepath.Join(sinkDir, sinkFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
