package logparse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScanRecords(t *testing.T) {
	t.Run("string and block content", func(t *testing.T) {
		log := strings.Join([]string{
			`{"type":"user","timestamp":"2025-03-04T10:00:00Z","message":{"role":"user","content":"hello there"}}`,
			`{"type":"assistant","timestamp":"2025-03-04T10:00:05Z","message":{"role":"assistant","model":"some-model","content":[{"type":"text","text":"hi"},{"type":"tool_use","name":"Bash","input":{"command":"ls"}},{"type":"text","text":"done"}],"usage":{"input_tokens":10,"output_tokens":20,"cache_creation_input_tokens":3,"cache_read_input_tokens":4}}}`,
		}, "\n")

		records, err := ScanRecords(strings.NewReader(log))
		if err != nil {
			t.Fatalf("ScanRecords: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("records=%d want 2", len(records))
		}
		if records[0].Role != "user" || records[0].Text != "hello there" {
			t.Fatalf("user record=%+v", records[0])
		}
		if records[0].Usage != nil {
			t.Fatalf("user record has usage")
		}
		asst := records[1]
		if asst.Text != "hi\ndone" {
			t.Fatalf("assistant text=%q", asst.Text)
		}
		if len(asst.ToolUses) != 1 || asst.ToolUses[0].Name != "Bash" {
			t.Fatalf("tool uses=%+v", asst.ToolUses)
		}
		if asst.Model != "some-model" {
			t.Fatalf("model=%q", asst.Model)
		}
		if asst.Usage == nil || asst.Usage.InputTokens != 10 || asst.Usage.CacheReadTokens != 4 {
			t.Fatalf("usage=%+v", asst.Usage)
		}
		want := time.Date(2025, 3, 4, 10, 0, 5, 0, time.UTC)
		if !asst.Timestamp.Equal(want) {
			t.Fatalf("timestamp=%v want %v", asst.Timestamp, want)
		}
	})

	t.Run("malformed and foreign lines are skipped", func(t *testing.T) {
		log := strings.Join([]string{
			`not json at all`,
			`{"type":"file-history-snapshot","message":{"role":"user","content":"x"}}`,
			`{"type":"user","isMeta":true,"message":{"role":"user","content":"meta"}}`,
			`{"type":"summary","summary":"whatever"}`,
			`{"type":"user","message":{"role":"tool","content":"x"}}`,
			`{"type":"user","message":{"role":"user","content":"kept"}}`,
			`{"broken`,
		}, "\n")

		records, err := ScanRecords(strings.NewReader(log))
		if err != nil {
			t.Fatalf("ScanRecords: %v", err)
		}
		if len(records) != 1 || records[0].Text != "kept" {
			t.Fatalf("records=%+v want only the kept line", records)
		}
	})

	t.Run("missing timestamp tolerated", func(t *testing.T) {
		records, err := ScanRecords(strings.NewReader(`{"type":"user","message":{"role":"user","content":"no clock"}}`))
		if err != nil {
			t.Fatalf("ScanRecords: %v", err)
		}
		if len(records) != 1 || !records[0].Timestamp.IsZero() {
			t.Fatalf("records=%+v want one with zero timestamp", records)
		}
	})

	t.Run("local command noise dropped from user turns", func(t *testing.T) {
		log := strings.Join([]string{
			`{"type":"user","message":{"role":"user","content":"<command-name>/clear</command-name>"}}`,
			`{"type":"user","message":{"role":"user","content":"<local-command-stdout>out</local-command-stdout>"}}`,
		}, "\n")
		records, err := ScanRecords(strings.NewReader(log))
		if err != nil {
			t.Fatalf("ScanRecords: %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("records=%+v want none", records)
		}
	})

	t.Run("unknown block types are no-ops", func(t *testing.T) {
		log := `{"type":"assistant","message":{"role":"assistant","content":[{"type":"thinking","thinking":"hmm"},{"type":"text","text":"answer"},{"type":"tool_result","tool_use_id":"t1","content":"ok"}]}}`
		records, err := ScanRecords(strings.NewReader(log))
		if err != nil {
			t.Fatalf("ScanRecords: %v", err)
		}
		if len(records) != 1 || records[0].Text != "answer" {
			t.Fatalf("records=%+v", records)
		}
		if len(records[0].ToolUses) != 0 {
			t.Fatalf("tool uses=%+v want none", records[0].ToolUses)
		}
	})
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.jsonl"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v want ErrNotExist", err)
	}
}
