// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/accountmgr/amkit/internal/config"
)

// Init routes logs to a rotating file under the amkit data directory. When
// verbose is set, a console writer on stderr is added as well; operator-facing
// progress lines stay on plain stdout and are not logged here.
func Init(verbose bool) error {
	if _, err := config.EnsureDataDir(); err != nil {
		return err
	}
	logPath, err := config.LogPath()
	if err != nil {
		return err
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1,
		MaxBackups: 2,
	}}
	if verbose {
		logWriters = append(logWriters, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		With().Timestamp().Logger()
	return nil
}
