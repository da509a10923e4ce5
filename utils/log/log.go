package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	Log *logrus.Logger
)

// This init function is also for testing cases, where the entry point is not
// main function. Packages logging during tests would hit a nil logger if we
// don't init here.
func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.InfoLevel
	if parsed, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = parsed
	}
	Log.SetLevel(level)
}
