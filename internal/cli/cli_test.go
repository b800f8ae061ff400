package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/recaplabs/claude-recap/internal/wrapped"
)

// writeFixtureDir lays out a minimal Claude data dir with one project and
// one session file.
func writeFixtureDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	projectDir := filepath.Join(root, "projects", "-home-alice-webapp")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var lines []string
	start := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		role := "user"
		text := fmt.Sprintf("prompt number %d", i)
		if i%2 == 1 {
			role = "assistant"
			text = fmt.Sprintf("reply number %d", i)
		}
		lines = append(lines, fmt.Sprintf(
			`{"type":%q,"timestamp":%q,"message":{"role":%q,"content":%q}}`,
			role, start.Add(time.Duration(i)*10*time.Minute).Format(time.RFC3339), role, text))
	}
	path := filepath.Join(projectDir, "550e8400-e29b-41d4-a716-446655440000.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write session: %v", err)
	}
	return root
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestStatsCommand(t *testing.T) {
	root := writeFixtureDir(t)

	stdout, _, err := runCommand(t, "--claude-dir", root, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(stdout, "home/alice/webapp") {
		t.Fatalf("missing project row:\n%s", stdout)
	}

	stdout, _, err = runCommand(t, "--claude-dir", root, "stats", "webapp")
	if err != nil {
		t.Fatalf("stats webapp: %v", err)
	}
	if !strings.Contains(stdout, "6") {
		t.Fatalf("missing message count:\n%s", stdout)
	}
}

func TestStatsUnknownProject(t *testing.T) {
	root := writeFixtureDir(t)
	_, _, err := runCommand(t, "--claude-dir", root, "stats", "no-such-project")
	if err == nil {
		t.Fatalf("expected error for unknown project")
	}
}

func TestWrappedAndDecodeCommands(t *testing.T) {
	root := writeFixtureDir(t)
	configPath := filepath.Join(t.TempDir(), "config.json")

	stdout, stderr, err := runCommand(t,
		"--claude-dir", root, "--config", configPath,
		"wrapped", "--year", "2025", "--name", "Alice")
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	payload := strings.TrimSpace(stdout)
	if payload == "" {
		t.Fatalf("no payload on stdout")
	}
	if !strings.Contains(stderr, "1 sessions") {
		t.Fatalf("stats line missing:\n%s", stderr)
	}

	summary, err := wrapped.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if summary.Year != 2025 || summary.Name != "Alice" || summary.Counts.Messages != 6 {
		t.Fatalf("summary=%+v", summary)
	}

	decoded, _, err := runCommand(t, "decode", payload)
	if err != nil {
		t.Fatalf("decode command: %v", err)
	}
	if !strings.Contains(decoded, `"Year": 2025`) {
		t.Fatalf("decode output:\n%s", decoded)
	}
}

func TestWrappedNoActivityYear(t *testing.T) {
	root := writeFixtureDir(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	_, _, err := runCommand(t,
		"--claude-dir", root, "--config", configPath,
		"wrapped", "--year", "2024", "--name", "Alice")
	if err == nil {
		t.Fatalf("expected no-activity error")
	}
}

func TestSearchCommand(t *testing.T) {
	root := writeFixtureDir(t)
	stdout, _, err := runCommand(t, "--claude-dir", root, "search", "prompt number 2")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(stdout, "prompt number 2") {
		t.Fatalf("missing match:\n%s", stdout)
	}

	stdout, _, err = runCommand(t, "--claude-dir", root, "search", "nothing matches this")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(strings.ToLower(stdout), "no matches") {
		t.Fatalf("expected empty-result notice:\n%s", stdout)
	}
}

func TestSessionsCommand(t *testing.T) {
	root := writeFixtureDir(t)
	stdout, _, err := runCommand(t, "--claude-dir", root, "sessions", "webapp")
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if !strings.Contains(stdout, "550e8400") {
		t.Fatalf("missing session row:\n%s", stdout)
	}
	if !strings.Contains(stdout, "prompt number 0") {
		t.Fatalf("missing slug:\n%s", stdout)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"name", "count"}, [][]string{
		{"alpha", "1"},
		{"a-much-longer-name", "23"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "name") {
		t.Fatalf("header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "---") {
		t.Fatalf("separator: %q", lines[1])
	}
	if !strings.Contains(lines[3], "a-much-longer-name  23") {
		t.Fatalf("row: %q", lines[3])
	}
}
