package rename

import (
	"errors"
	"strings"

	"github.com/temirov/git-rename-branch/internal/execshell"
	"github.com/temirov/git-rename-branch/internal/gitrepo"
)

const (
	targetNameRequiredMessageConstant         = "target branch name must be provided"
	remoteNameRequiredMessageConstant         = "remote name must be provided when updating the remote"
	currentReferenceRequiredMessageConstant   = "current reference must be resolved before planning"
	planRepositoryRootRequiredMessageConstant = "repository root must be provided before planning"
	gitBranchSubcommandConstant               = "branch"
	gitMoveFlagConstant                       = "-m"
	gitPushSubcommandConstant                 = "push"
	gitSetUpstreamFlagConstant                = "--set-upstream"
	gitDeleteFlagConstant                     = "--delete"
)

// ErrTargetNameRequired indicates a plan was requested without a target branch.
var ErrTargetNameRequired = errors.New(targetNameRequiredMessageConstant)

// ErrRemoteNameRequired indicates UpdateRemote was set without a remote.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// ErrCurrentReferenceRequired indicates the current reference was empty.
var ErrCurrentReferenceRequired = errors.New(currentReferenceRequiredMessageConstant)

// ErrPlanRepositoryRootRequired indicates the plan had no repository to run in.
var ErrPlanRepositoryRootRequired = errors.New(planRepositoryRootRequiredMessageConstant)

// StepKind names a planned git operation.
type StepKind string

// Supported step kinds, in plan order.
const (
	StepKindRename StepKind = "rename"
	StepKindPush   StepKind = "push"
	StepKindDelete StepKind = "delete"
)

// Step is one git invocation in a plan.
type Step struct {
	Kind    StepKind
	Command execshell.ShellCommand
	// RequiresPreviousSuccess skips the step when any earlier executed step failed.
	RequiresPreviousSuccess bool
}

// Plan is the ordered list of steps derived from Options and the current reference.
type Plan struct {
	Options          Options
	CurrentReference gitrepo.Reference
	RepositoryRoot   string
	Steps            []Step
}

// BuildPlan derives the steps for options. The delete step is planned only when the
// target differs from the current reference, so renaming a branch onto itself never
// deletes the remote copy it just pushed.
func BuildPlan(options Options, currentReference gitrepo.Reference, repositoryRoot string) (Plan, error) {
	if len(options.TargetName) == 0 {
		return Plan{}, ErrTargetNameRequired
	}
	if options.UpdateRemote && len(options.RemoteName) == 0 {
		return Plan{}, ErrRemoteNameRequired
	}
	if len(currentReference.Name) == 0 {
		return Plan{}, ErrCurrentReferenceRequired
	}
	trimmedRoot := strings.TrimSpace(repositoryRoot)
	if len(trimmedRoot) == 0 {
		return Plan{}, ErrPlanRepositoryRootRequired
	}

	plan := Plan{Options: options, CurrentReference: currentReference, RepositoryRoot: trimmedRoot}
	plan.Steps = append(plan.Steps, Step{
		Kind:    StepKindRename,
		Command: gitCommand(trimmedRoot, gitBranchSubcommandConstant, gitMoveFlagConstant, currentReference.Name, options.TargetName),
	})

	if !options.UpdateRemote {
		return plan, nil
	}

	plan.Steps = append(plan.Steps, Step{
		Kind:                    StepKindPush,
		Command:                 gitCommand(trimmedRoot, gitPushSubcommandConstant, gitSetUpstreamFlagConstant, options.RemoteName, options.TargetName),
		RequiresPreviousSuccess: true,
	})

	if options.TargetName != currentReference.Name {
		plan.Steps = append(plan.Steps, Step{
			Kind:                    StepKindDelete,
			Command:                 gitCommand(trimmedRoot, gitPushSubcommandConstant, options.RemoteName, gitDeleteFlagConstant, currentReference.Name),
			RequiresPreviousSuccess: true,
		})
	}

	return plan, nil
}

func gitCommand(repositoryRoot string, arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: repositoryRoot,
		},
	}
}
