package telemetry_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmadden/officepal/internal/telemetry"
)

func TestEmit_Disabled_WritesNothing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OFFICEPAL_OBSERVE_JSON", "")

	telemetry.Emit("turn_routed", map[string]any{"intent": "chat"})

	if _, err := os.Stat(filepath.Join(".officepal", "events.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("expected no sink file, stat err: %v", err)
	}
}

func TestEmit_Enabled_AppendsEventLines(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OFFICEPAL_OBSERVE_JSON", "1")

	telemetry.Emit("turn_routed", map[string]any{"intent": "add_meeting", "error": telemetry.Err(nil)})
	telemetry.Emit("llm_call", map[string]any{"duration_ms": int64(12)})

	f, err := os.Open(filepath.Join(".officepal", "events.jsonl"))
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("bad JSONL line %q: %v", sc.Text(), err)
		}
		events = append(events, m)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0]["event"] != "turn_routed" || events[0]["intent"] != "add_meeting" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[0]["error"] != nil {
		t.Fatalf("expected nil error field, got %v", events[0]["error"])
	}
	if events[1]["event"] != "llm_call" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	for _, e := range events {
		if _, ok := e["time"].(string); !ok {
			t.Fatalf("event missing time field: %+v", e)
		}
	}
}
