package rename_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-rename-branch/internal/execshell"
	"github.com/temirov/git-rename-branch/internal/gitrepo"
	"github.com/temirov/git-rename-branch/internal/rename"
)

func TestBuildPlan(testInstance *testing.T) {
	testCases := []struct {
		name              string
		options           rename.Options
		currentReference  gitrepo.Reference
		expectedArguments [][]string
		expectedGuards    []bool
	}{
		{
			name:              "local_rename_only",
			options:           rename.Options{TargetName: testTargetBranchConstant},
			currentReference:  gitrepo.Reference{Name: testCurrentBranchConstant},
			expectedArguments: [][]string{{"branch", "-m", "old-name", "new-name"}},
			expectedGuards:    []bool{false},
		},
		{
			name:             "remote_update",
			options:          rename.Options{UpdateRemote: true, RemoteName: testRemoteOriginConstant, TargetName: testTargetBranchConstant},
			currentReference: gitrepo.Reference{Name: testCurrentBranchConstant},
			expectedArguments: [][]string{
				{"branch", "-m", "old-name", "new-name"},
				{"push", "--set-upstream", "origin", "new-name"},
				{"push", "origin", "--delete", "old-name"},
			},
			expectedGuards: []bool{false, true, true},
		},
		{
			name:             "same_name_skips_delete",
			options:          rename.Options{UpdateRemote: true, RemoteName: testRemoteOriginConstant, TargetName: testTargetBranchConstant},
			currentReference: gitrepo.Reference{Name: testTargetBranchConstant},
			expectedArguments: [][]string{
				{"branch", "-m", "new-name", "new-name"},
				{"push", "--set-upstream", "origin", "new-name"},
			},
			expectedGuards: []bool{false, true},
		},
		{
			name:             "detached_head_uses_commit",
			options:          rename.Options{TargetName: testTargetBranchConstant},
			currentReference: gitrepo.Reference{Name: "1a2b3c4", Detached: true},
			expectedArguments: [][]string{
				{"branch", "-m", "1a2b3c4", "new-name"},
			},
			expectedGuards: []bool{false},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			plan, planError := rename.BuildPlan(testCase.options, testCase.currentReference, testRepositoryRootConstant)
			require.NoError(testInstance, planError)
			require.Len(testInstance, plan.Steps, len(testCase.expectedArguments))

			for index, step := range plan.Steps {
				require.Equal(testInstance, execshell.CommandGit, step.Command.Name)
				require.Equal(testInstance, testCase.expectedArguments[index], step.Command.Details.Arguments)
				require.Equal(testInstance, testRepositoryRootConstant, step.Command.Details.WorkingDirectory)
				require.Equal(testInstance, testCase.expectedGuards[index], step.RequiresPreviousSuccess)
			}
		})
	}
}

func TestBuildPlanStepKinds(testInstance *testing.T) {
	plan, planError := rename.BuildPlan(
		rename.Options{UpdateRemote: true, RemoteName: testRemoteOriginConstant, TargetName: testTargetBranchConstant},
		gitrepo.Reference{Name: testCurrentBranchConstant},
		testRepositoryRootConstant,
	)
	require.NoError(testInstance, planError)
	kinds := make([]rename.StepKind, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		kinds = append(kinds, step.Kind)
	}
	require.Equal(testInstance, []rename.StepKind{rename.StepKindRename, rename.StepKindPush, rename.StepKindDelete}, kinds)
}

func TestBuildPlanValidation(testInstance *testing.T) {
	testCases := []struct {
		name             string
		options          rename.Options
		currentReference gitrepo.Reference
		repositoryRoot   string
		expectedError    error
	}{
		{
			name:             "missing_target",
			currentReference: gitrepo.Reference{Name: testCurrentBranchConstant},
			repositoryRoot:   testRepositoryRootConstant,
			expectedError:    rename.ErrTargetNameRequired,
		},
		{
			name:             "missing_remote",
			options:          rename.Options{UpdateRemote: true, TargetName: testTargetBranchConstant},
			currentReference: gitrepo.Reference{Name: testCurrentBranchConstant},
			repositoryRoot:   testRepositoryRootConstant,
			expectedError:    rename.ErrRemoteNameRequired,
		},
		{
			name:           "missing_current_reference",
			options:        rename.Options{TargetName: testTargetBranchConstant},
			repositoryRoot: testRepositoryRootConstant,
			expectedError:  rename.ErrCurrentReferenceRequired,
		},
		{
			name:             "missing_repository_root",
			options:          rename.Options{TargetName: testTargetBranchConstant},
			currentReference: gitrepo.Reference{Name: testCurrentBranchConstant},
			repositoryRoot:   " ",
			expectedError:    rename.ErrPlanRepositoryRootRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, planError := rename.BuildPlan(testCase.options, testCase.currentReference, testCase.repositoryRoot)
			require.ErrorIs(testInstance, planError, testCase.expectedError)
		})
	}
}
