package rename

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/git-rename-branch/internal/execshell"
	"github.com/temirov/git-rename-branch/internal/gitrepo"
)

const (
	planExecutorMissingMessageConstant = "plan executor requires a git executor"
	stepFailedErrorTemplateConstant    = "%s step failed: %v"
)

// ErrPlanExecutorNotConfigured indicates NewExecutor was called without a git executor.
var ErrPlanExecutorNotConfigured = errors.New(planExecutorMissingMessageConstant)

// StepFailedError reports the first step that did not succeed.
type StepFailedError struct {
	Kind  StepKind
	Cause error
}

func (failure StepFailedError) Error() string {
	return fmt.Sprintf(stepFailedErrorTemplateConstant, failure.Kind, failure.Cause)
}

func (failure StepFailedError) Unwrap() error {
	return failure.Cause
}

// StepOutcome records what happened to one planned step.
type StepOutcome struct {
	Step     Step
	Executed bool
	Result   execshell.ExecutionResult
	Failure  error
}

// Succeeded reports whether the step ran and git exited successfully.
func (outcome StepOutcome) Succeeded() bool {
	return outcome.Executed && outcome.Failure == nil
}

// Skipped reports whether the step guard prevented execution.
func (outcome StepOutcome) Skipped() bool {
	return !outcome.Executed
}

// Report collects step outcomes in plan order.
type Report struct {
	Plan     Plan
	Outcomes []StepOutcome
}

// Executor runs a plan step by step.
type Executor struct {
	gitExecutor gitrepo.GitExecutor
}

// NewExecutor constructs an Executor.
func NewExecutor(gitExecutor gitrepo.GitExecutor) (*Executor, error) {
	if gitExecutor == nil {
		return nil, ErrPlanExecutorNotConfigured
	}
	return &Executor{gitExecutor: gitExecutor}, nil
}

// Execute runs every step whose guard allows it. The returned error wraps the first
// failure as a StepFailedError; the report is complete either way.
func (executor *Executor) Execute(executionContext context.Context, plan Plan) (Report, error) {
	report := Report{Plan: plan, Outcomes: make([]StepOutcome, 0, len(plan.Steps))}
	var firstFailure error

	for _, step := range plan.Steps {
		if step.RequiresPreviousSuccess && firstFailure != nil {
			report.Outcomes = append(report.Outcomes, StepOutcome{Step: step})
			continue
		}

		result, executionError := executor.gitExecutor.ExecuteGit(executionContext, step.Command.Details)
		outcome := StepOutcome{Step: step, Executed: true, Result: result, Failure: executionError}
		report.Outcomes = append(report.Outcomes, outcome)

		if executionError != nil && firstFailure == nil {
			firstFailure = StepFailedError{Kind: step.Kind, Cause: executionError}
		}
	}

	return report, firstFailure
}
