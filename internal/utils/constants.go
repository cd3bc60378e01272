package utils

// GlobalConfigDirectoryName is the directory under the user home that holds
// the global configuration file.
const GlobalConfigDirectoryName = ".codecat"

// GlobalConfigFileName is the configuration file name inside the global
// configuration directory.
const GlobalConfigFileName = "config.yaml"

// LocalConfigFileName is the per-project configuration file name looked up in
// the working directory.
const LocalConfigFileName = ".codecat.yaml"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

// LoggerInitializationFailedMessageFormat reports a failure to construct the
// application logger.
const LoggerInitializationFailedMessageFormat = "unable to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "codecat failed"
