package logger

// Option modifies a logger configuration
type Option func(*Config)

func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

func WithOutput(output string) Option {
	return func(c *Config) { c.Output = output }
}

func WithFilename(filename string) Option {
	return func(c *Config) { c.File.Filename = filename }
}

func WithService(service string) Option {
	return func(c *Config) { c.Service = service }
}

// NewWithOptions creates a new logger starting from DefaultConfig
func NewWithOptions(opts ...Option) (*Logger, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return New(cfg)
}
