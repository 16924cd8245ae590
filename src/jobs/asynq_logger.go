package jobs

import (
	"fmt"

	"Coaching-Management-Backend/src/logger"
)

// asynqLogger routes asynq's own logging through zerolog.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...interface{})  { logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...interface{})  { logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...interface{}) { logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...interface{}) { logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
