package model

import "time"

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"json"` // json or console
	Output     string `envconfig:"LOG_OUTPUT" default:"stdout"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/app.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080" yaml:"port"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s" yaml:"read_timeout"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s" yaml:"shutdown_timeout"`
	Mode            string        `envconfig:"SERVER_MODE" default:"release" yaml:"mode"`
}
