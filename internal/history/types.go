package history

import (
	"time"

	"github.com/recaplabs/claude-recap/internal/logparse"
)

// Project is one subdirectory under the projects root. Key is the encoded
// directory name, Path its decoded form.
type Project struct {
	Key        string
	Path       string
	Sessions   []Session
	ModifiedAt time.Time
}

// Session is one log file. StartedAt/EndedAt are the min/max record
// timestamps; both are zero when the session has no timestamped records.
type Session struct {
	ID          string
	ProjectPath string
	FilePath    string
	Records     []logparse.Record
	StartedAt   time.Time
	EndedAt     time.Time
	Slug        string
	IsAgent     bool
	FileSize    int64
}

func (s Session) MessageCount() int { return len(s.Records) }

func (s Session) UserMessageCount() int {
	n := 0
	for _, rec := range s.Records {
		if rec.IsUser() {
			n++
		}
	}
	return n
}

// Duration is the start-to-end span. Sessions without timestamps report zero.
func (s Session) Duration() time.Duration {
	if s.StartedAt.IsZero() || s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

func (s Session) DisplayTitle() string {
	if s.Slug != "" {
		return s.Slug
	}
	if s.ID != "" {
		return s.ID
	}
	return "Untitled session"
}
