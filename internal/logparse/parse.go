package logparse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

type lineEnvelope struct {
	Type      string          `json:"type"`
	IsMeta    bool            `json:"isMeta"`
	Message   json.RawMessage `json:"message"`
	Timestamp string          `json:"timestamp"`
}

type lineMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
	Usage   *usageFields    `json:"usage"`
}

type usageFields struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadTokens     int64 `json:"cache_read_input_tokens"`
}

// ReadRecords parses one session log file. Missing or unreadable files
// surface the os error so callers can decide whether to skip the session.
func ReadRecords(filePath string) ([]Record, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ScanRecords(f)
}

// ScanRecords streams records line by line from r. Malformed lines and
// event types outside the conversation set are skipped; a corrupt line never
// aborts the rest of the file. A read error on the underlying stream does.
func ScanRecords(r io.Reader) ([]Record, error) {
	var records []Record
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return records, err
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			if rec, ok := parseLine(line); ok {
				records = append(records, rec)
			}
		}
		if err == io.EOF {
			break
		}
	}
	return records, nil
}

func parseLine(line []byte) (Record, bool) {
	var env lineEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Record{}, false
	}
	if env.IsMeta || env.Type == "file-history-snapshot" || env.Type == "summary" {
		return Record{}, false
	}
	if len(env.Message) == 0 {
		return Record{}, false
	}
	var msg lineMessage
	if err := json.Unmarshal(env.Message, &msg); err != nil {
		return Record{}, false
	}
	role := strings.ToLower(strings.TrimSpace(msg.Role))
	if role != "user" && role != "assistant" {
		return Record{}, false
	}

	blocks := parseContentBlocks(msg.Content)
	text := joinText(blocks)
	if role == "user" && shouldSkipUserText(text) {
		return Record{}, false
	}

	rec := Record{
		Role:      role,
		Text:      text,
		Timestamp: parseTime(env.Timestamp),
		ToolUses:  collectToolUses(blocks),
	}
	if role == "assistant" {
		rec.Model = msg.Model
		if msg.Usage != nil {
			rec.Usage = &TokenUsage{
				InputTokens:         msg.Usage.InputTokens,
				OutputTokens:        msg.Usage.OutputTokens,
				CacheCreationTokens: msg.Usage.CacheCreationTokens,
				CacheReadTokens:     msg.Usage.CacheReadTokens,
			}
		}
	}
	// Lines that only ferry tool results back to the model are transport,
	// not conversation.
	if rec.Text == "" && len(rec.ToolUses) == 0 && rec.Usage == nil {
		return Record{}, false
	}
	return rec, true
}

func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

// Command transcript lines are injected by the CLI itself and are not part
// of the conversation.
func shouldSkipUserText(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "<local-command-") {
		return true
	}
	if strings.Contains(lower, "<command-name>") || strings.Contains(lower, "<command-message>") {
		return true
	}
	return false
}
