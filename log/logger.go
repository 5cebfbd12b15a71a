package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
)

var levelMap = map[Level]logging.Level{
	Debug:    logging.DEBUG,
	Info:     logging.INFO,
	Notice:   logging.NOTICE,
	Warning:  logging.WARNING,
	Error:    logging.ERROR,
	Critical: logging.CRITICAL,
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	curSink  io.Writer = os.Stdout
	curLevel           = Notice
)

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})

	Critical(v ...interface{})
	Criticalf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. The current verbosity setting is
// retained.
func SetSink(sink io.Writer) {
	curSink = sink
	applyBackend()
}

// Set logger verbosity.
func SetLevel(level Level) {
	curLevel = level
	applyBackend()
}

func applyBackend() {
	backend := logging.NewLogBackend(curSink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend := logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(levelMap[curLevel], "")
	logging.SetBackend(leveledBackend)
}

func init() {
	applyBackend()
}
