package scheduler

import (
	"github.com/netresearch/go-cron"
	"github.com/rs/zerolog"
)

// cronLogger routes go-cron's key/value logging into zerolog. Its routine
// chatter (wake, schedule, run) goes to debug.
type cronLogger struct {
	log zerolog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
