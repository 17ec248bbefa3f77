package app

import (
	"io"
	"log/slog"

	"github.com/vk/pipelayer/internal/session"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. The display graph is written to outW; logs go to logW so the
// result stays machine-readable.
type App struct {
	outW    io.Writer
	logW    io.Writer
	logger  *slog.Logger
	config  *Config
	session *session.Session
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and an empty
// session; definitions are loaded when Run is called.
func NewApp(outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logW:    logW,
		logger:  logger,
		config:  config,
		session: session.New(),
	}
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}
