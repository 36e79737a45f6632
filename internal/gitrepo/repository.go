package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/git-rename-branch/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant      = "git executor not configured"
	repositoryRootRequiredMessageConstant  = "repository root must be provided"
	remoteNameRequiredMessageConstant      = "remote name must be provided"
	emptyReferenceMessageConstant          = "git reported an empty reference for HEAD"
	currentBranchErrorTemplateConstant     = "unable to resolve current branch: %w"
	detachedHeadErrorTemplateConstant      = "unable to resolve detached HEAD commit: %w"
	remoteListErrorTemplateConstant        = "unable to list remotes: %w"
	gitSymbolicRefSubcommandConstant       = "symbolic-ref"
	gitQuietFlagConstant                   = "--quiet"
	gitShortFlagConstant                   = "--short"
	gitRevParseSubcommandConstant          = "rev-parse"
	gitHeadReferenceConstant               = "HEAD"
	gitRemoteSubcommandConstant            = "remote"
	symbolicRefDetachedExitCodeConstant    = 1
	remoteListLineSeparatorConstant        = "\n"
	remoteListCarriageReturnCutsetConstant = "\r"
)

// ErrGitExecutorNotConfigured indicates the repository manager was built without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryRootRequired indicates a query was issued without a repository root.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// ErrRemoteNameRequired indicates a remote lookup was issued with an empty name.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrEmptyReference indicates git succeeded but printed no reference for HEAD.
var ErrEmptyReference = errors.New(emptyReferenceMessageConstant)

// GitExecutor is the subset of execshell.ShellExecutor used for repository queries.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Reference names what HEAD points at.
type Reference struct {
	// Name is the short branch name, or the abbreviated commit hash when Detached.
	Name     string
	Detached bool
}

// RepositoryManager runs read-only git queries against a repository root.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CurrentReference returns the checked-out branch, falling back to the short commit hash on a detached HEAD.
func (manager *RepositoryManager) CurrentReference(executionContext context.Context, repositoryRoot string) (Reference, error) {
	trimmedRoot := strings.TrimSpace(repositoryRoot)
	if len(trimmedRoot) == 0 {
		return Reference{}, ErrRepositoryRootRequired
	}

	branchResult, branchError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSymbolicRefSubcommandConstant, gitQuietFlagConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: trimmedRoot,
	})
	if branchError == nil {
		branchName := strings.TrimSpace(branchResult.StandardOutput)
		if len(branchName) == 0 {
			return Reference{}, fmt.Errorf(currentBranchErrorTemplateConstant, ErrEmptyReference)
		}
		return Reference{Name: branchName}, nil
	}

	var commandFailure execshell.CommandFailedError
	if !errors.As(branchError, &commandFailure) || commandFailure.Result.ExitCode != symbolicRefDetachedExitCodeConstant {
		return Reference{}, fmt.Errorf(currentBranchErrorTemplateConstant, branchError)
	}

	commitResult, commitError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: trimmedRoot,
	})
	if commitError != nil {
		return Reference{}, fmt.Errorf(detachedHeadErrorTemplateConstant, commitError)
	}

	commitHash := strings.TrimSpace(commitResult.StandardOutput)
	if len(commitHash) == 0 {
		return Reference{}, fmt.Errorf(detachedHeadErrorTemplateConstant, ErrEmptyReference)
	}
	return Reference{Name: commitHash, Detached: true}, nil
}

// ListRemotes returns the configured remote names in the order git prints them.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryRoot string) ([]string, error) {
	trimmedRoot := strings.TrimSpace(repositoryRoot)
	if len(trimmedRoot) == 0 {
		return nil, ErrRepositoryRootRequired
	}

	result, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant},
		WorkingDirectory: trimmedRoot,
	})
	if executionError != nil {
		return nil, fmt.Errorf(remoteListErrorTemplateConstant, executionError)
	}

	remotes := []string{}
	for _, line := range strings.Split(result.StandardOutput, remoteListLineSeparatorConstant) {
		remoteName := strings.TrimSpace(strings.TrimRight(line, remoteListCarriageReturnCutsetConstant))
		if len(remoteName) == 0 {
			continue
		}
		remotes = append(remotes, remoteName)
	}
	return remotes, nil
}

// RemoteExists reports whether a remote with exactly this name is configured.
func (manager *RepositoryManager) RemoteExists(executionContext context.Context, repositoryRoot string, remoteName string) (bool, error) {
	if len(remoteName) == 0 {
		return false, ErrRemoteNameRequired
	}

	remotes, listError := manager.ListRemotes(executionContext, repositoryRoot)
	if listError != nil {
		return false, listError
	}

	for _, candidate := range remotes {
		if candidate == remoteName {
			return true, nil
		}
	}
	return false, nil
}
