package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	failureSuffixTemplateConstant           = " (exit code %d%s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	currentBranchLabelConstant              = "current branch"
	tagsSuffixConstant                      = " with tags"
	flagPrefixConstant                      = "-"
	fallbackUnknownValueLabelConstant       = "unknown"
	workingDirectorySuffixTemplateConstant  = "%s (in %s)"
)

const (
	gitDirectoryFlagConstant          = "-C"
	gitInitSubcommandNameConstant     = "init"
	gitSymbolicRefSubcommandConstant  = "symbolic-ref"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitCreateBranchFlagConstant       = "-b"
	gitBranchSubcommandNameConstant   = "branch"
	gitDeleteFlagConstant             = "-d"
	gitForceDeleteFlagConstant        = "-D"
	gitMergeSubcommandNameConstant    = "merge"
	gitTagSubcommandNameConstant      = "tag"
	gitAnnotateFlagConstant           = "-a"
	gitMessageFlagConstant            = "-m"
	gitPushSubcommandNameConstant     = "push"
	gitPushTagsFlagConstant           = "--tags"
	gitFlagValueOffsetConstant        = 1
)

const (
	gitInitStartTemplateConstant                 = "Initializing repository at %s"
	gitInitSuccessTemplateConstant               = "Initialized repository at %s"
	gitInitFailureTemplateConstant               = "Failed to initialize repository at %s%s"
	gitInitExecutionFailureTemplateConstant      = "Unable to initialize repository at %s: %s"
	gitCurrentBranchStartTemplateConstant        = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant      = "Current branch in %s is %s"
	gitCurrentBranchFailureTemplateConstant      = "Failed to identify current branch in %s%s"
	gitCurrentBranchExecutionTemplateConstant    = "Unable to identify current branch in %s: %s"
	gitBranchCreationStartTemplateConstant       = "Creating branch %s in %s"
	gitBranchCreationSuccessTemplateConstant     = "Created branch %s in %s"
	gitBranchCreationFailureTemplateConstant     = "Failed to create branch %s in %s%s"
	gitBranchCreationExecutionTemplateConstant   = "Unable to create branch %s in %s: %s"
	gitCheckoutStartTemplateConstant             = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant           = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant           = "Failed to switch %s to branch %s%s"
	gitCheckoutExecutionTemplateConstant         = "Unable to switch %s to branch %s: %s"
	gitBranchDeletionStartTemplateConstant       = "Removing local branch %s in %s"
	gitBranchForceDeletionStartTemplateConstant  = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant     = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant     = "Failed to remove local branch %s in %s%s"
	gitBranchDeletionExecutionTemplateConstant   = "Unable to remove local branch %s in %s: %s"
	gitMergeStartTemplateConstant                = "Merging %s into the current branch in %s"
	gitMergeSuccessTemplateConstant              = "Merged %s into the current branch in %s"
	gitMergeFailureTemplateConstant              = "Failed to merge %s in %s%s"
	gitMergeExecutionTemplateConstant            = "Unable to merge %s in %s: %s"
	gitTagStartTemplateConstant                  = "Creating tag %s in %s"
	gitAnnotatedTagStartTemplateConstant         = "Creating annotated tag %s in %s"
	gitTagSuccessTemplateConstant                = "Created tag %s in %s"
	gitTagFailureTemplateConstant                = "Failed to create tag %s in %s%s"
	gitTagExecutionTemplateConstant              = "Unable to create tag %s in %s: %s"
	gitPushStartTemplateConstant                 = "Pushing %s%s to %s from %s"
	gitPushSuccessTemplateConstant               = "Pushed %s%s to %s from %s"
	gitPushFailureTemplateConstant               = "Failed to push %s%s to %s from %s%s"
	gitPushExecutionTemplateConstant             = "Unable to push %s%s to %s from %s: %s"
	gitInvocationRepositoryArgumentIndexConstant = 1
	gitInvocationSubcommandArgumentIndexConstant = 2
)

// gitInvocation is a git command line split into its repository and subcommand parts.
type gitInvocation struct {
	repository string
	subcommand string
	arguments  []string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a process that never produced a result.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	invocation := parseGitInvocation(command)
	switch invocation.subcommand {
	case gitInitSubcommandNameConstant:
		return formatter.describeGitInit(invocation, result, failure, stage)
	case gitSymbolicRefSubcommandConstant, gitRevParseSubcommandNameConstant:
		return formatter.describeGitCurrentBranch(invocation, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckout(invocation, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranch(command, invocation, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		return formatter.describeGitMerge(invocation, result, failure, stage)
	case gitTagSubcommandNameConstant:
		return formatter.describeGitTag(invocation, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPush(invocation, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitInit(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitInitStartTemplateConstant, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitInitSuccessTemplateConstant, invocation.repository)
	case messageStageFailure:
		return fmt.Sprintf(gitInitFailureTemplateConstant, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitCurrentBranch(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, invocation.repository, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
	case messageStageFailure:
		return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitCurrentBranchExecutionTemplateConstant, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitCheckout(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	createdBranch := findFlagValue(invocation.arguments, gitCreateBranchFlagConstant)
	if len(createdBranch) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchCreationStartTemplateConstant, createdBranch, invocation.repository)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchCreationSuccessTemplateConstant, createdBranch, invocation.repository)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchCreationFailureTemplateConstant, createdBranch, invocation.repository, formatter.formatFailureSuffix(result))
		default:
			return fmt.Sprintf(gitBranchCreationExecutionTemplateConstant, createdBranch, invocation.repository, formatter.describeFailure(failure))
		}
	}

	targetBranch := formatter.ensureValue(extractFirstNonFlagArgument(invocation.arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, invocation.repository, targetBranch)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, invocation.repository, targetBranch)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, invocation.repository, targetBranch, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitCheckoutExecutionTemplateConstant, invocation.repository, targetBranch, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitBranch(command ShellCommand, invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	forceDeletion := containsArgument(invocation.arguments, gitForceDeleteFlagConstant)
	if !forceDeletion && !containsArgument(invocation.arguments, gitDeleteFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	deletedBranch := formatter.ensureValue(extractFirstNonFlagArgument(invocation.arguments))
	switch stage {
	case messageStageStart:
		if forceDeletion {
			return fmt.Sprintf(gitBranchForceDeletionStartTemplateConstant, deletedBranch, invocation.repository)
		}
		return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, deletedBranch, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, deletedBranch, invocation.repository)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, deletedBranch, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitBranchDeletionExecutionTemplateConstant, deletedBranch, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitMerge(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	mergedBranch := formatter.ensureValue(extractFirstNonFlagArgument(invocation.arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeStartTemplateConstant, mergedBranch, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeSuccessTemplateConstant, mergedBranch, invocation.repository)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeFailureTemplateConstant, mergedBranch, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitMergeExecutionTemplateConstant, mergedBranch, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitTag(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	annotated := containsArgument(invocation.arguments, gitAnnotateFlagConstant)
	tagName := formatter.ensureValue(formatter.extractTagName(invocation.arguments))
	switch stage {
	case messageStageStart:
		if annotated {
			return fmt.Sprintf(gitAnnotatedTagStartTemplateConstant, tagName, invocation.repository)
		}
		return fmt.Sprintf(gitTagStartTemplateConstant, tagName, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitTagSuccessTemplateConstant, tagName, invocation.repository)
	case messageStageFailure:
		return fmt.Sprintf(gitTagFailureTemplateConstant, tagName, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitTagExecutionTemplateConstant, tagName, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitPush(invocation gitInvocation, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := extractNonFlagArguments(invocation.arguments)
	remoteName := fallbackUnknownValue(positionalArguments, 0)
	reference := currentBranchLabelConstant
	if len(positionalArguments) > 1 {
		reference = positionalArguments[1]
	}
	tagsSuffix := emptyStringConstant
	if containsArgument(invocation.arguments, gitPushTagsFlagConstant) {
		tagsSuffix = tagsSuffixConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushStartTemplateConstant, reference, tagsSuffix, remoteName, invocation.repository)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, reference, tagsSuffix, remoteName, invocation.repository)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, reference, tagsSuffix, remoteName, invocation.repository, formatter.formatFailureSuffix(result))
	default:
		return fmt.Sprintf(gitPushExecutionTemplateConstant, reference, tagsSuffix, remoteName, invocation.repository, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := formatCommandLine(command)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, commandLabel, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatFailureSuffix(result ExecutionResult) string {
	return fmt.Sprintf(failureSuffixTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

// extractTagName skips the value that follows -m so the message is never mistaken for the tag.
func (formatter CommandMessageFormatter) extractTagName(arguments []string) string {
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		argument := strings.TrimSpace(arguments[argumentIndex])
		if argument == gitMessageFlagConstant {
			argumentIndex += gitFlagValueOffsetConstant
			continue
		}
		if strings.HasPrefix(argument, flagPrefixConstant) {
			continue
		}
		return argument
	}
	return emptyStringConstant
}

// parseGitInvocation strips a leading "-C <path>" so the subcommand can be recognized.
func parseGitInvocation(command ShellCommand) gitInvocation {
	arguments := command.Details.Arguments
	repository := strings.TrimSpace(command.Details.WorkingDirectory)
	subcommandIndex := 0
	if len(arguments) > gitInvocationRepositoryArgumentIndexConstant && strings.TrimSpace(arguments[0]) == gitDirectoryFlagConstant {
		repository = strings.TrimSpace(arguments[gitInvocationRepositoryArgumentIndexConstant])
		subcommandIndex = gitInvocationSubcommandArgumentIndexConstant
	}
	if len(repository) == 0 {
		repository = defaultWorkingDirectoryLabelConstant
	}
	if subcommandIndex >= len(arguments) {
		return gitInvocation{repository: repository}
	}
	return gitInvocation{
		repository: repository,
		subcommand: strings.TrimSpace(arguments[subcommandIndex]),
		arguments:  arguments[subcommandIndex+1:],
	}
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == flag && argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

func extractNonFlagArguments(arguments []string) []string {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positionalArguments = append(positionalArguments, trimmedArgument)
	}
	return positionalArguments
}

func extractFirstNonFlagArgument(arguments []string) string {
	return fallbackValueAt(extractNonFlagArguments(arguments), 0, emptyStringConstant)
}

func fallbackUnknownValue(values []string, index int) string {
	return fallbackValueAt(values, index, fallbackUnknownValueLabelConstant)
}

func fallbackValueAt(values []string, index int, fallback string) string {
	if index < len(values) {
		return values[index]
	}
	return fallback
}
