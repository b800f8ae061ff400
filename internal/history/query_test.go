package history

import (
	"testing"

	"github.com/recaplabs/claude-recap/internal/logparse"
)

func queryFixture() []Project {
	return []Project{
		{
			Path: "home/alice/webapp",
			Sessions: []Session{
				{ID: "aaa111", Records: []logparse.Record{
					{Role: "user", Text: "fix the login redirect"},
					{Role: "assistant", Text: "looking at auth.go now"},
				}},
				{ID: "bbb222", Records: []logparse.Record{
					{Role: "user", Text: "add dark mode"},
				}},
			},
		},
		{
			Path: "home/alice/web",
			Sessions: []Session{
				{ID: "ccc333"},
			},
		},
	}
}

func TestFindProject(t *testing.T) {
	projects := queryFixture()

	t.Run("exact match beats partial", func(t *testing.T) {
		p, ok := FindProject(projects, "home/alice/web")
		if !ok || p.Path != "home/alice/web" {
			t.Fatalf("got %q ok=%v", p.Path, ok)
		}
	})

	t.Run("substring match", func(t *testing.T) {
		p, ok := FindProject(projects, "webapp")
		if !ok || p.Path != "home/alice/webapp" {
			t.Fatalf("got %q ok=%v", p.Path, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := FindProject(projects, "nope"); ok {
			t.Fatalf("unexpected match")
		}
	})

	t.Run("empty ref", func(t *testing.T) {
		if _, ok := FindProject(projects, "  "); ok {
			t.Fatalf("unexpected match for blank ref")
		}
	})
}

func TestFindSession(t *testing.T) {
	projects := queryFixture()

	sess, project, ok := FindSession(projects, "bbb")
	if !ok || sess.ID != "bbb222" || project.Path != "home/alice/webapp" {
		t.Fatalf("got %q in %q ok=%v", sess.ID, project.Path, ok)
	}

	if _, _, ok := FindSession(projects, "zzz"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestSearch(t *testing.T) {
	projects := queryFixture()

	t.Run("regex over message text", func(t *testing.T) {
		matches, err := Search(projects, `auth\.go`)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("matches=%d want 1", len(matches))
		}
		m := matches[0]
		if m.SessionID != "aaa111" || m.Role != "assistant" {
			t.Fatalf("match=%+v", m)
		}
	})

	t.Run("bad pattern surfaces error", func(t *testing.T) {
		if _, err := Search(projects, `([`); err == nil {
			t.Fatalf("want compile error")
		}
	})

	t.Run("no matches", func(t *testing.T) {
		matches, err := Search(projects, "quantum")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("matches=%+v want none", matches)
		}
	})
}
