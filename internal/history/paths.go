package history

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvClaudeDir overrides the default ~/.claude data directory.
const EnvClaudeDir = "CLAUDE_DIR"

// pathFiller is the character the CLI substitutes for path separators when
// it flattens a project path into a directory name.
const pathFiller = "-"

// ResolveClaudeDir picks the log root: explicit override, then the
// CLAUDE_DIR environment variable, then ~/.claude.
func ResolveClaudeDir(override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return filepath.Clean(os.ExpandEnv(v)), nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvClaudeDir)); v != "" {
		return filepath.Clean(os.ExpandEnv(v)), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude"), nil
}

// DecodeProjectDir reverses the directory-name encoding: strip one leading
// filler, then map every remaining filler back to a path separator.
//
// Known limitation: paths whose real segments contain the filler character
// decode incorrectly; the encoding does not escape it and neither can we.
func DecodeProjectDir(name string) string {
	name = strings.TrimPrefix(name, pathFiller)
	return strings.ReplaceAll(name, pathFiller, "/")
}

func isAgentSessionFileName(name string) bool {
	return strings.HasPrefix(name, "agent-") && strings.HasSuffix(name, ".jsonl")
}

func isSessionFileName(name string) bool {
	return strings.HasSuffix(name, ".jsonl")
}

func sessionIDFromFileName(name string) string {
	return strings.TrimSuffix(name, ".jsonl")
}
