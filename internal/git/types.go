// Package git provides Git operations for rulesync.
// This file defines types used by the Runner.
package git

// Status represents the current state of a Git working tree.
type Status struct {
	Staged    []FileChange // Files staged for commit
	Unstaged  []FileChange // Modified but not staged
	Untracked []string     // Untracked files
	Branch    string       // Current branch name
	Ahead     int          // Commits ahead of upstream
	Behind    int          // Commits behind upstream
}

// FileChange represents a changed file in the working tree.
type FileChange struct {
	Path    string     // File path relative to repo root
	Status  ChangeType // Type of change (Added, Modified, Deleted, etc.)
	OldPath string     // For renamed files, the original path
}

// ChangeType represents the type of change for a file.
type ChangeType string

// Change type constants for git status.
const (
	ChangeAdded    ChangeType = "A"
	ChangeModified ChangeType = "M"
	ChangeDeleted  ChangeType = "D"
	ChangeRenamed  ChangeType = "R"
	ChangeCopied   ChangeType = "C"
	ChangeUnmerged ChangeType = "U"
)

// IsClean returns true if the working tree has no changes.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// ChangedPaths returns every changed path once, in status-output order:
// staged first, then unstaged not already listed, then untracked. Each
// entry carries its short status marker, e.g. "M  custom/direct.list".
func (s *Status) ChangedPaths() []string {
	seen := make(map[string]struct{}, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))
	out := make([]string, 0, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))

	for _, fc := range s.Staged {
		if _, ok := seen[fc.Path]; ok {
			continue
		}
		seen[fc.Path] = struct{}{}
		out = append(out, string(fc.Status)+"  "+fc.Path)
	}
	for _, fc := range s.Unstaged {
		if _, ok := seen[fc.Path]; ok {
			continue
		}
		seen[fc.Path] = struct{}{}
		out = append(out, string(fc.Status)+"  "+fc.Path)
	}
	for _, p := range s.Untracked {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, "??"+" "+p)
	}

	return out
}
