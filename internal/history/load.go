package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/recaplabs/claude-recap/internal/logparse"
)

// ErrNotFound reports a missing root directory, project, or session.
var ErrNotFound = errors.New("not found")

// LoadProjects scans the projects root and builds one Project per
// subdirectory with one Session per log file. Unreadable or unparseable
// session files are skipped; a project directory with no usable sessions is
// kept with an empty session list.
func LoadProjects(claudeDir string) ([]Project, error) {
	root, err := ResolveClaudeDir(claudeDir)
	if err != nil {
		return nil, err
	}
	projectsDir := filepath.Join(root, "projects")
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: projects dir %s", ErrNotFound, projectsDir)
		}
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project, err := loadProject(projectsDir, entry.Name())
		if err != nil {
			logrus.WithField("project", entry.Name()).WithError(err).Warn("skipping project")
			continue
		}
		projects = append(projects, project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Path) < strings.ToLower(projects[j].Path)
	})
	return projects, nil
}

func loadProject(projectsDir, key string) (Project, error) {
	dir := filepath.Join(projectsDir, key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Project{}, err
	}

	project := Project{Key: key, Path: DecodeProjectDir(key)}
	for _, entry := range entries {
		if entry.IsDir() || !isSessionFileName(entry.Name()) {
			continue
		}
		session, err := loadSession(dir, entry.Name(), project.Path)
		if err != nil {
			logrus.WithField("session", entry.Name()).WithError(err).Warn("skipping session")
			continue
		}
		if info, err := entry.Info(); err == nil {
			session.FileSize = info.Size()
			if info.ModTime().After(project.ModifiedAt) {
				project.ModifiedAt = info.ModTime()
			}
		}
		project.Sessions = append(project.Sessions, session)
	}

	sort.Slice(project.Sessions, func(i, j int) bool {
		return project.Sessions[i].StartedAt.Before(project.Sessions[j].StartedAt)
	})
	return project, nil
}

func loadSession(dir, fileName, projectPath string) (Session, error) {
	filePath := filepath.Join(dir, fileName)
	records, err := logparse.ReadRecords(filePath)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		ID:          sessionIDFromFileName(fileName),
		ProjectPath: projectPath,
		FilePath:    filePath,
		Records:     records,
		IsAgent:     isAgentSessionFileName(fileName),
	}
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			continue
		}
		if session.StartedAt.IsZero() || rec.Timestamp.Before(session.StartedAt) {
			session.StartedAt = rec.Timestamp
		}
		if session.EndedAt.IsZero() || rec.Timestamp.After(session.EndedAt) {
			session.EndedAt = rec.Timestamp
		}
	}
	session.Slug = firstPromptSlug(records)
	return session, nil
}

const maxSlugRunes = 80

func firstPromptSlug(records []logparse.Record) string {
	for _, rec := range records {
		if !rec.IsUser() {
			continue
		}
		text := strings.TrimSpace(rec.Text)
		if text == "" {
			continue
		}
		if line, _, found := strings.Cut(text, "\n"); found {
			text = strings.TrimSpace(line)
		}
		runes := []rune(text)
		if len(runes) > maxSlugRunes {
			text = string(runes[:maxSlugRunes]) + "…"
		}
		return text
	}
	return ""
}
