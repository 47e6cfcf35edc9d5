// Package sync exports notes into a git-tracked markdown vault.
package sync

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// GitManager handles git operations
type GitManager struct {
	RepoPath string
	// Push sends new commits to origin when the repository has one.
	Push   bool
	Author object.Signature
	logger *slog.Logger
}

// NewGitManager creates a new GitManager
func NewGitManager(repoPath string, logger *slog.Logger) *GitManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &GitManager{
		RepoPath: repoPath,
		Author:   object.Signature{Name: "Vocal Notes", Email: "notes@vocal-notes.local"},
		logger:   logger,
	}
}

// open opens the repository, initializing it on first use.
func (g *GitManager) open() (*git.Repository, error) {
	r, err := git.PlainOpen(g.RepoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if err := os.MkdirAll(g.RepoPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create vault directory: %w", err)
		}
		r, err = git.PlainInit(g.RepoPath, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repo: %w", err)
	}
	return r, nil
}

// Sync commits all changes and pushes them when Push is set. It reports
// whether a commit was made; a clean worktree is not an error.
func (g *GitManager) Sync(message string) (bool, error) {
	r, err := g.open()
	if err != nil {
		return false, err
	}

	w, err := r.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	for path, st := range status {
		if st.Worktree == git.Deleted {
			if _, err := w.Remove(path); err != nil {
				return false, fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("failed to add changes: %w", err)
	}

	if message == "" {
		message = fmt.Sprintf("Auto-sync: %s", time.Now().Format(time.RFC3339))
	}
	author := g.Author
	author.When = time.Now()
	if _, err := w.Commit(message, &git.CommitOptions{Author: &author}); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}

	if g.Push {
		if err := g.push(r); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (g *GitManager) push(r *git.Repository) error {
	if _, err := r.Remote(git.DefaultRemoteName); errors.Is(err, git.ErrRemoteNotFound) {
		g.logger.Warn("vault has no origin remote, skipping push", "path", g.RepoPath)
		return nil
	}

	opts := &git.PushOptions{}
	home, _ := os.UserHomeDir()
	publicKeys, err := ssh.NewPublicKeysFromFile("git", filepath.Join(home, ".ssh", "id_rsa"), "")
	if err != nil {
		g.logger.Warn("could not load SSH key, pushing without explicit auth", "error", err)
	} else {
		opts.Auth = publicKeys
	}

	err = r.Push(opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
