// Package logx configures the service logger. Every entry carries the
// service name so log aggregation can separate this process from the rest of
// the deployment.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "relaydesk"

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

var DefaultConfig = &Config{
	Debug:        false,
	PrettyFormat: false,
}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

// New builds the service logger writing to w.
func New(w io.Writer, conf Config) zerolog.Logger {
	if conf.PrettyFormat {
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
		})
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", serviceName).
		Caller().
		Stack().
		Logger()
}

// Init replaces the global logger with one built from conf.
func Init(opts ...Config) {
	log.Logger = New(os.Stdout, *safe(opts...))
}
