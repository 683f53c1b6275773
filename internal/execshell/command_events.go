package execshell

// CommandEventObserver receives lifecycle notifications for git command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that the process exited and supplies the result, including non-zero exits.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented the process from producing a result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

func notifyStarted(observers []CommandEventObserver, command ShellCommand) {
	for _, observer := range observers {
		observer.CommandStarted(command)
	}
}

func notifyCompleted(observers []CommandEventObserver, command ShellCommand, result ExecutionResult) {
	for _, observer := range observers {
		observer.CommandCompleted(command, result)
	}
}

func notifyExecutionFailed(observers []CommandEventObserver, command ShellCommand, failure error) {
	for _, observer := range observers {
		observer.CommandExecutionFailed(command, failure)
	}
}
