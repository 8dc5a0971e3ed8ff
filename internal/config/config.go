package config

// Default values.
const (
	DefaultTasksFile = "~/.taskdeck/tasks.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// TasksFile is the path to the tasks file.
	TasksFile string `toml:"tasks_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// NoColor disables colored output.
	NoColor bool `toml:"no_color"`
}

// setDefaults fills cfg with built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.NoColor = false
}
