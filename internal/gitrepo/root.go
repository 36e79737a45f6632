package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

const (
	workingDirectoryRequiredMessageConstant = "working directory must be provided"
	notRepositoryTemplateConstant           = "%s is not inside a git repository"
	workingDirectoryResolveTemplateConstant = "unable to resolve working directory %s: %w"
	repositoryOpenTemplateConstant          = "unable to open repository at %s: %w"
	worktreeOpenTemplateConstant            = "unable to open worktree at %s: %w"
)

// ErrWorkingDirectoryRequired indicates root discovery was attempted without a starting directory.
var ErrWorkingDirectoryRequired = errors.New(workingDirectoryRequiredMessageConstant)

// NotRepositoryError reports a working directory outside any git repository.
type NotRepositoryError struct {
	WorkingDirectory string
}

// Error describes the missing repository.
func (notRepository NotRepositoryError) Error() string {
	return fmt.Sprintf(notRepositoryTemplateConstant, notRepository.WorkingDirectory)
}

// LocateRepositoryRoot walks up from workingDirectory to the enclosing worktree root.
// Bare repositories have no worktree, so the directory holding the repository is returned instead.
func LocateRepositoryRoot(workingDirectory string) (string, error) {
	trimmedDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedDirectory) == 0 {
		return "", ErrWorkingDirectoryRequired
	}

	absoluteDirectory, absoluteError := filepath.Abs(trimmedDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(workingDirectoryResolveTemplateConstant, trimmedDirectory, absoluteError)
	}

	repository, openError := git.PlainOpenWithOptions(absoluteDirectory, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return "", NotRepositoryError{WorkingDirectory: absoluteDirectory}
		}
		return "", fmt.Errorf(repositoryOpenTemplateConstant, absoluteDirectory, openError)
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		if errors.Is(worktreeError, git.ErrIsBareRepository) {
			return absoluteDirectory, nil
		}
		return "", fmt.Errorf(worktreeOpenTemplateConstant, absoluteDirectory, worktreeError)
	}

	return worktree.Filesystem.Root(), nil
}
