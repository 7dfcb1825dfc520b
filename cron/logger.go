package cron

import (
	"fmt"

	"grambazaar/utils"
)

// asynqLogger routes asynq's internal logging through zap.
type asynqLogger struct{}

func newAsynqLogger() asynqLogger { return asynqLogger{} }

func (asynqLogger) Debug(args ...interface{}) { utils.GetLogger().Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...interface{})  { utils.GetLogger().Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...interface{})  { utils.GetLogger().Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...interface{}) { utils.GetLogger().Error(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...interface{}) { utils.GetLogger().Fatal(fmt.Sprint(args...)) }
