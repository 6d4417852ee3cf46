package typesetting

import "github.com/jonathan/resume-tailor/internal/logger"

// restyLogger routes resty's internal messages through zerolog
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.Logger.Error().Str("component", "typesetting").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.Logger.Warn().Str("component", "typesetting").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.Logger.Debug().Str("component", "typesetting").Msgf(format, v...)
}
