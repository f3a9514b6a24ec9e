package logger

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level" json:"level"`

	// Format selects "json" or "console" output.
	Format string `mapstructure:"format" json:"format"`

	// Output selects "stdout" or "stderr".
	Output string `mapstructure:"output" json:"output"`

	// Timestamp enables timestamps on every entry.
	Timestamp bool `mapstructure:"timestamp" json:"timestamp"`

	// NoColor disables ANSI colors in console format.
	NoColor bool `mapstructure:"no_color" json:"no_color"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}
