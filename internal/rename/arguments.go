package rename

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

const (
	optionFlagSetNameConstant             = "git-rename-branch"
	dryRunFlagNameConstant                = "dry-run"
	dryRunFlagShorthandConstant           = "d"
	dryRunFlagUsageConstant               = "Print the planned git commands without running them"
	updateRemoteFlagNameConstant          = "update-remote"
	updateRemoteFlagShorthandConstant     = "u"
	updateRemoteFlagUsageConstant         = "Push the renamed branch to `remote`, set it as upstream, and delete the old remote branch"
	helpArgumentConstant                  = "help"
	helpShortFlagConstant                 = "-h"
	helpLongFlagConstant                  = "--help"
	optionTerminatorConstant              = "--"
	shortFlagPrefixConstant               = "-"
	longFlagPrefixConstant                = "--"
	inlineValueSeparatorConstant          = "="
	missingRemoteNameMessageConstant      = "missing remote name for --update-remote"
	missingTargetNameMessageConstant      = "missing target branch name"
	remoteValidatorMissingMessageConstant = "remote validator not configured"
	invalidRemoteErrorTemplateConstant    = "invalid remote %q: no such remote in this repository"
	unknownOptionErrorTemplateConstant    = "unknown option %s"
	tooManyArgumentsErrorTemplateConstant = "too many arguments: expected one branch name, got %s"
	remoteLookupErrorTemplateConstant     = "unable to validate remote %q: %w"
	quotedArgumentTemplateConstant        = "%q"
	quotedArgumentSeparatorConstant       = ", "
)

// ErrMissingRemoteName indicates --update-remote had no usable value.
var ErrMissingRemoteName = errors.New(missingRemoteNameMessageConstant)

// ErrMissingTargetName indicates no branch name was supplied.
var ErrMissingTargetName = errors.New(missingTargetNameMessageConstant)

// ErrRemoteValidatorNotConfigured indicates the parser was built without a remote validator.
var ErrRemoteValidatorNotConfigured = errors.New(remoteValidatorMissingMessageConstant)

// InvalidRemoteError reports a remote that git does not know about.
type InvalidRemoteError struct {
	Remote string
}

func (invalid InvalidRemoteError) Error() string {
	return fmt.Sprintf(invalidRemoteErrorTemplateConstant, invalid.Remote)
}

// UnknownOptionError reports a flag token the command does not define.
type UnknownOptionError struct {
	Option string
}

func (unknown UnknownOptionError) Error() string {
	return fmt.Sprintf(unknownOptionErrorTemplateConstant, unknown.Option)
}

// TooManyArgumentsError reports a second positional argument. Parsing stops when it occurs.
type TooManyArgumentsError struct {
	Arguments []string
}

func (tooMany TooManyArgumentsError) Error() string {
	quotedArguments := make([]string, 0, len(tooMany.Arguments))
	for _, argument := range tooMany.Arguments {
		quotedArguments = append(quotedArguments, fmt.Sprintf(quotedArgumentTemplateConstant, argument))
	}
	return fmt.Sprintf(tooManyArgumentsErrorTemplateConstant, strings.Join(quotedArguments, quotedArgumentSeparatorConstant))
}

// RemoteValidator reports whether a remote is configured for the repository being renamed.
type RemoteValidator interface {
	RemoteExists(executionContext context.Context, remoteName string) (bool, error)
}

// NewOptionFlagSet declares the command options. The parser resolves tokens against it and
// Cobra renders it in usage text.
func NewOptionFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(optionFlagSetNameConstant, pflag.ContinueOnError)
	flagSet.SortFlags = false
	flagSet.BoolP(dryRunFlagNameConstant, dryRunFlagShorthandConstant, false, dryRunFlagUsageConstant)
	flagSet.StringP(updateRemoteFlagNameConstant, updateRemoteFlagShorthandConstant, "", updateRemoteFlagUsageConstant)
	return flagSet
}

// IsHelpRequest reports whether arguments ask for usage text instead of a rename.
func IsHelpRequest(arguments []string) bool {
	if len(arguments) == 0 {
		return true
	}
	switch arguments[0] {
	case helpArgumentConstant, helpShortFlagConstant, helpLongFlagConstant:
		return true
	default:
		return false
	}
}

// ArgumentParser converts raw arguments into Options.
type ArgumentParser struct {
	flagSet         *pflag.FlagSet
	remoteValidator RemoteValidator
}

// NewArgumentParser constructs an ArgumentParser. A nil flag set selects NewOptionFlagSet.
func NewArgumentParser(flagSet *pflag.FlagSet, remoteValidator RemoteValidator) (*ArgumentParser, error) {
	if remoteValidator == nil {
		return nil, ErrRemoteValidatorNotConfigured
	}
	if flagSet == nil {
		flagSet = NewOptionFlagSet()
	}
	return &ArgumentParser{flagSet: flagSet, remoteValidator: remoteValidator}, nil
}

// Parse scans arguments once. Recoverable problems accumulate and are returned together;
// callers enumerate them with multierr.Errors. A second positional argument stops the scan
// and is returned alongside whatever was accumulated before it.
func (parser *ArgumentParser) Parse(executionContext context.Context, arguments []string) (Options, error) {
	options := Options{}
	var parseErrors error
	positionalArguments := make([]string, 0, 1)
	optionsTerminated := false

	for index := 0; index < len(arguments); index++ {
		token := arguments[index]

		if !optionsTerminated && token == optionTerminatorConstant {
			optionsTerminated = true
			continue
		}

		if optionsTerminated || !strings.HasPrefix(token, shortFlagPrefixConstant) {
			if len(positionalArguments) > 0 {
				return Options{}, multierr.Append(parseErrors, TooManyArgumentsError{Arguments: append(positionalArguments, token)})
			}
			positionalArguments = append(positionalArguments, token)
			continue
		}

		flag, inlineValue, hasInlineValue := parser.lookupFlag(token)
		if flag == nil {
			parseErrors = multierr.Append(parseErrors, UnknownOptionError{Option: token})
			continue
		}

		switch flag.Name {
		case dryRunFlagNameConstant:
			if hasInlineValue {
				parseErrors = multierr.Append(parseErrors, UnknownOptionError{Option: token})
				continue
			}
			options.DryRun = true
		case updateRemoteFlagNameConstant:
			options.UpdateRemote = true
			remoteName := inlineValue
			if !hasInlineValue && index+1 < len(arguments) && !strings.HasPrefix(arguments[index+1], shortFlagPrefixConstant) {
				index++
				remoteName = arguments[index]
			}
			if len(remoteName) == 0 {
				parseErrors = multierr.Append(parseErrors, ErrMissingRemoteName)
				continue
			}
			options.RemoteName = remoteName
			parseErrors = multierr.Append(parseErrors, parser.validateRemote(executionContext, remoteName))
		}
	}

	if len(positionalArguments) == 0 {
		parseErrors = multierr.Append(parseErrors, ErrMissingTargetName)
	} else {
		options.TargetName = positionalArguments[0]
	}

	if parseErrors != nil {
		return Options{}, parseErrors
	}
	return options, nil
}

func (parser *ArgumentParser) lookupFlag(token string) (*pflag.Flag, string, bool) {
	if strings.HasPrefix(token, longFlagPrefixConstant) {
		name, value, hasValue := strings.Cut(strings.TrimPrefix(token, longFlagPrefixConstant), inlineValueSeparatorConstant)
		if len(name) == 0 {
			return nil, "", false
		}
		return parser.flagSet.Lookup(name), value, hasValue
	}

	shorthand := strings.TrimPrefix(token, shortFlagPrefixConstant)
	if len(shorthand) != 1 {
		return nil, "", false
	}
	return parser.flagSet.ShorthandLookup(shorthand), "", false
}

func (parser *ArgumentParser) validateRemote(executionContext context.Context, remoteName string) error {
	exists, lookupError := parser.remoteValidator.RemoteExists(executionContext, remoteName)
	if lookupError != nil {
		return fmt.Errorf(remoteLookupErrorTemplateConstant, remoteName, lookupError)
	}
	if !exists {
		return InvalidRemoteError{Remote: remoteName}
	}
	return nil
}
