package history

import "testing"

func TestDecodeProjectDir(t *testing.T) {
	t.Run("separators restored", func(t *testing.T) {
		got := DecodeProjectDir("-Users-alice-dev-tool")
		if got != "Users/alice/dev/tool" {
			t.Fatalf("decoded=%q", got)
		}
	})

	t.Run("pure function", func(t *testing.T) {
		first := DecodeProjectDir("-home-bob-work")
		second := DecodeProjectDir("-home-bob-work")
		if first != second {
			t.Fatalf("decode not stable: %q vs %q", first, second)
		}
	})

	t.Run("filler inside a segment decodes as a separator", func(t *testing.T) {
		// "/home/bob/my-app" and "/home/bob/my/app" encode identically;
		// decode picks the all-separators reading. Known limitation.
		got := DecodeProjectDir("-home-bob-my-app")
		if got != "home/bob/my/app" {
			t.Fatalf("decoded=%q", got)
		}
	})
}

func TestSessionFileNames(t *testing.T) {
	if !isAgentSessionFileName("agent-0192abcd.jsonl") {
		t.Fatalf("agent file not recognized")
	}
	if isAgentSessionFileName("0192abcd.jsonl") {
		t.Fatalf("main file misclassified as agent")
	}
	if isAgentSessionFileName("agent-notes.txt") {
		t.Fatalf("non-jsonl file misclassified")
	}
	if got := sessionIDFromFileName("abc123.jsonl"); got != "abc123" {
		t.Fatalf("session id=%q", got)
	}
}
