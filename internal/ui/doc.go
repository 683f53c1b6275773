// Package ui renders git command lifecycle events as human-readable console lines.
//
// ConsoleCommandEventLogger is registered as an execshell observer when the
// console log format is selected, so users see what each gitflow operation
// asked git to do while structured diagnostics stay at debug level.
package ui
