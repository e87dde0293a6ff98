package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"
)

// RepositoryMetadata describes the repository a source folder belongs to.
type RepositoryMetadata struct {
	BranchName         *string
	CommitHash         *string
	RepositoryFullName *string
	Subfolder          string
	RepoRootFolder     string
}

// CollectRepositoryMetadata collects the branch name, commit hash, origin name,
// subfolder and worktree root of the repository containing sourceFolder.
// When sourceFolder is not inside a repository, RepoRootFolder is the cleaned
// absolute sourceFolder and the error is ErrNotRepository.
func CollectRepositoryMetadata(sourceFolder string) (*RepositoryMetadata, error) {
	if sourceFolder == "" {
		return &RepositoryMetadata{}, ErrSourceFolderNotSet
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourceFolder),
	}

	repoRootFolder, err := findGitRepositoryPath(sourceFolder)
	if err != nil {
		return md, err
	}

	md.RepoRootFolder = filepath.Clean(repoRootFolder)

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			repositoryFullName := strings.TrimSuffix(cfg.URLs[0], ".git")
			md.RepositoryFullName = &repositoryFullName
		}
	}

	return md, nil
}

// RepositoryRoot returns the worktree root for sourceFolder, used as the
// filesystem root of page extractions when none is configured. Outside a
// repository it returns the absolute sourceFolder itself.
func RepositoryRoot(sourceFolder string, logger hclog.Logger) string {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	md, err := CollectRepositoryMetadata(sourceFolder)
	if err != nil {
		logger.Debug("repository root not detected", "source", sourceFolder, "error", err)
		return md.RepoRootFolder
	}

	logger.Debug("repository root detected", "root", md.RepoRootFolder, "subfolder", md.Subfolder)
	return md.RepoRootFolder
}
