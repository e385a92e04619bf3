package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"go.uber.org/zap"
)

// Delta detects files changed relative to a git baseline.
type Delta struct {
	RootDir      string
	TargetBranch string
	Log          *zap.Logger
}

func (d *Delta) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// ChangedFiles returns the set of changed paths (forward-slash, relative to
// the repository root): uncommitted and staged changes plus commits not on
// the target branch. It returns nil, meaning "everything", when git is
// unavailable or no baseline can be determined.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	log := d.logger()

	repo, err := git.PlainOpen(d.RootDir)
	if err != nil {
		log.Debug("not a git repository, using all files", zap.String("root", d.RootDir))
		return nil, nil
	}

	worktreeChanges, err := d.worktreeChanges(repo)
	if err != nil {
		log.Debug("worktree diff failed, using all files", zap.Error(err))
		return nil, nil
	}

	branchChanges, err := d.branchChanges(ctx, repo)
	if err != nil {
		log.Debug("branch diff failed, using all files", zap.Error(err))
		return nil, nil
	}

	changed := make(map[string]bool, len(worktreeChanges)+len(branchChanges))
	for p := range worktreeChanges {
		changed[p] = true
	}
	for p := range branchChanges {
		changed[p] = true
	}

	log.Debug("delta computed", zap.Int("changed", len(changed)))
	return changed, nil
}

// worktreeChanges returns files with uncommitted modifications (staged + unstaged).
func (d *Delta) worktreeChanges(repo *git.Repository) (map[string]bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := wt.Status()
	if err != nil {
		return nil, err
	}

	changed := make(map[string]bool)
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		changed[path] = true
	}
	return changed, nil
}

// branchChanges returns files changed between HEAD and the target branch.
func (d *Delta) branchChanges(ctx context.Context, repo *git.Repository) (map[string]bool, error) {
	targetBranch := d.targetBranch(repo)
	if targetBranch == "" {
		return nil, nil
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(targetBranch), true)
	if err != nil {
		targetRef, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", targetBranch), true)
		if err != nil {
			return nil, nil // target branch not found
		}
	}
	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting target commit: %w", err)
	}

	// On the target branch itself, diff the latest commit against its parent.
	if headCommit.Hash == targetCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil, nil
		}
		parent, err := headCommit.Parent(0)
		if err != nil {
			return nil, nil
		}
		targetCommit = parent
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	changed := make(map[string]bool)
	for _, change := range changes {
		if name := changeName(change); name != "" {
			changed[name] = true
		}
	}
	return changed, nil
}

// targetBranch picks the branch to diff against: FLATCONF_TARGET_BRANCH,
// then the configured branch, then common CI variables, then origin/HEAD,
// then "main".
func (d *Delta) targetBranch(repo *git.Repository) string {
	if branch := os.Getenv("FLATCONF_TARGET_BRANCH"); branch != "" {
		return branch
	}
	if d.TargetBranch != "" {
		return d.TargetBranch
	}

	ciVars := []string{
		"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab CI
		"GITHUB_BASE_REF",                     // GitHub Actions
		"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
		"CHANGE_TARGET",                       // Jenkins
	}
	for _, v := range ciVars {
		if branch := os.Getenv(v); branch != "" {
			return branch
		}
	}

	if branch := defaultBranch(repo); branch != "" {
		return branch
	}
	return "main"
}

// defaultBranch reads the symbolic ref origin/HEAD.
func defaultBranch(repo *git.Repository) string {
	// Unresolved: we need the symbolic target, not the commit hash.
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false)
	if err != nil {
		return ""
	}
	const prefix = "refs/remotes/origin/"
	target := ref.Target().String()
	if strings.HasPrefix(target, prefix) {
		return strings.TrimPrefix(target, prefix)
	}
	return ""
}

func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	case merkletrie.Delete:
		return change.From.Name
	}
	return ""
}

// FilterByDelta keeps only files in changedSet. A nil set keeps everything.
func FilterByDelta(files []FileInfo, changedSet map[string]bool) []FileInfo {
	if changedSet == nil {
		return files
	}

	filtered := make([]FileInfo, 0, len(changedSet))
	for _, f := range files {
		p := filepath.ToSlash(f.Path)
		if changedSet[p] || changedSet[strings.TrimPrefix(p, "./")] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
