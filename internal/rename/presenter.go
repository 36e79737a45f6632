package rename

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kballard/go-shellquote"
	"go.uber.org/multierr"

	"github.com/temirov/git-rename-branch/internal/ui"
)

const (
	dryRunTagConstant                 = "git-rename-branch (dry-run):"
	dryRunLineTemplateConstant        = "%s %s\n"
	dryRunValueTemplateConstant       = "%s %s=%s\n"
	dryRunDryRunKeyConstant           = "dry_run"
	dryRunUpdateRemoteKeyConstant     = "update_remote"
	dryRunRemoteNameKeyConstant       = "remote_name"
	dryRunTargetNameKeyConstant       = "target_name"
	dryRunCurrentReferenceKeyConstant = "current_ref"
	renamedMessageTemplateConstant    = "RENAMED: %s -> %s\n"
	pushedMessageTemplateConstant     = "PUSHED: %s -> %s\n"
	deletedMessageTemplateConstant    = "DELETED: %s/%s\n"
	skippedMessageTemplateConstant    = "SKIPPED: %s (previous step failed)\n"
	parseErrorLineTemplateConstant    = "error: %v\n"
	usageHintTemplateConstant         = "Run '%s --help' for usage.\n"
	programNameConstant               = "git-rename-branch"
)

// Presenter writes user-facing results. Diagnostics go through zap instead.
type Presenter struct {
	output io.Writer
	styler ui.Styler
}

// NewPresenter constructs a Presenter writing to output.
func NewPresenter(output io.Writer, styler ui.Styler) *Presenter {
	return &Presenter{output: output, styler: styler}
}

// RenderDryRun prints the resolved values followed by one line per planned step.
func (presenter *Presenter) RenderDryRun(plan Plan) error {
	tag := presenter.styler.Emphasize(dryRunTagConstant)
	values := []struct {
		key   string
		value string
	}{
		{key: dryRunDryRunKeyConstant, value: strconv.FormatBool(plan.Options.DryRun)},
		{key: dryRunUpdateRemoteKeyConstant, value: strconv.FormatBool(plan.Options.UpdateRemote)},
		{key: dryRunRemoteNameKeyConstant, value: plan.Options.RemoteName},
		{key: dryRunTargetNameKeyConstant, value: plan.Options.TargetName},
		{key: dryRunCurrentReferenceKeyConstant, value: plan.CurrentReference.Name},
	}

	for _, entry := range values {
		if _, writeError := fmt.Fprintf(presenter.output, dryRunValueTemplateConstant, tag, entry.key, entry.value); writeError != nil {
			return writeError
		}
	}

	for _, step := range plan.Steps {
		if _, writeError := fmt.Fprintf(presenter.output, dryRunLineTemplateConstant, tag, FormatCommandLine(step)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// RenderReport prints one line per successful or skipped step. Failures are reported by the caller.
func (presenter *Presenter) RenderReport(report Report) error {
	options := report.Plan.Options
	currentName := report.Plan.CurrentReference.Name

	for _, outcome := range report.Outcomes {
		var writeError error
		switch {
		case outcome.Skipped():
			_, writeError = fmt.Fprintf(presenter.output, skippedMessageTemplateConstant, FormatCommandLine(outcome.Step))
		case !outcome.Succeeded():
			continue
		case outcome.Step.Kind == StepKindRename:
			_, writeError = fmt.Fprintf(presenter.output, renamedMessageTemplateConstant, currentName, options.TargetName)
		case outcome.Step.Kind == StepKindPush:
			_, writeError = fmt.Fprintf(presenter.output, pushedMessageTemplateConstant, options.TargetName, options.RemoteName)
		case outcome.Step.Kind == StepKindDelete:
			_, writeError = fmt.Fprintf(presenter.output, deletedMessageTemplateConstant, options.RemoteName, currentName)
		}
		if writeError != nil {
			return writeError
		}
	}
	return nil
}

// RenderParseErrors prints every accumulated parse error followed by a pointer to the help text.
func RenderParseErrors(output io.Writer, parseError error) error {
	for _, individualError := range multierr.Errors(parseError) {
		if _, writeError := fmt.Fprintf(output, parseErrorLineTemplateConstant, individualError); writeError != nil {
			return writeError
		}
	}
	_, writeError := fmt.Fprintf(output, usageHintTemplateConstant, programNameConstant)
	return writeError
}

// FormatCommandLine renders the step's argument vector with shell quoting for display only.
func FormatCommandLine(step Step) string {
	return shellquote.Join(step.Command.Arguments()...)
}
