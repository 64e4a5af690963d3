package main

import (
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const loggerName = "clox"

// configureLogging routes the CLI's log messages to stderr. Verbosity 0 keeps
// everything below notice quiet so program output is unaffected.
func configureLogging(verbosity int) commonlog.Logger {
	commonlog.Configure(verbosity, nil)
	return logger()
}

func logger() commonlog.Logger {
	return commonlog.GetLogger(loggerName)
}
