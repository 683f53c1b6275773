// Package utils exposes the ambient helpers shared by the gitflow CLI.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// GITFLOW_ environment variables through Viper; LoggerFactory builds zap
// loggers in structured or console form; CommandContextAccessor carries
// resolved settings through cobra command contexts.
package utils
