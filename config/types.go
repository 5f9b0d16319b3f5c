package config

// ConversionConfig contains defaults for a conversion run
type ConversionConfig struct {
	Task  string `yaml:"task" validate:"omitempty,oneof=binloctokml binloctokml2"`
	Style string `yaml:"style" validate:"omitempty"`
}

// LoggingConfig contains console logging configuration
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Logging    LoggingConfig    `yaml:"logging"`
}
