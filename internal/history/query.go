package history

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// FindProject matches by case-insensitive substring of the decoded path.
// An exact match wins over a partial one.
func FindProject(projects []Project, ref string) (Project, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return Project{}, false
	}
	var partial Project
	var havePartial bool
	for _, project := range projects {
		path := strings.ToLower(project.Path)
		if path == ref {
			return project, true
		}
		if !havePartial && strings.Contains(path, ref) {
			partial = project
			havePartial = true
		}
	}
	return partial, havePartial
}

// FindSession matches by session ID prefix, then by substring.
func FindSession(projects []Project, ref string) (Session, Project, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Session{}, Project{}, false
	}
	for _, project := range projects {
		for _, sess := range project.Sessions {
			if sess.ID == ref || strings.HasPrefix(sess.ID, ref) {
				return sess, project, true
			}
		}
	}
	for _, project := range projects {
		for _, sess := range project.Sessions {
			if strings.Contains(sess.ID, ref) {
				return sess, project, true
			}
		}
	}
	return Session{}, Project{}, false
}

// SearchMatch is one message whose text matched a search pattern.
type SearchMatch struct {
	ProjectPath string
	SessionID   string
	Role        string
	Snippet     string
}

const snippetRunes = 120

// Search runs a compiled regular expression over every message in every
// session and returns one match per matching message.
func Search(projects []Project, pattern string) ([]SearchMatch, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var matches []SearchMatch
	for _, project := range projects {
		for _, sess := range project.Sessions {
			for _, rec := range sess.Records {
				loc := re.FindStringIndex(rec.Text)
				if loc == nil {
					continue
				}
				matches = append(matches, SearchMatch{
					ProjectPath: project.Path,
					SessionID:   sess.ID,
					Role:        rec.Role,
					Snippet:     snippetAround(rec.Text, loc[0]),
				})
			}
		}
	}
	return matches, nil
}

func snippetAround(text string, offset int) string {
	start := offset - snippetRunes/2
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	snippet := text[start:]
	runes := []rune(snippet)
	if len(runes) > snippetRunes {
		snippet = string(runes[:snippetRunes]) + "…"
	}
	return strings.ReplaceAll(snippet, "\n", " ")
}
