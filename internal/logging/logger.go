package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.InfoLevel)
}

// ForRun returns an entry tagged with the given run ID; every log line of one
// extraction pass carries it.
func ForRun(runID string) *logrus.Entry {
	return Log.WithField("run_id", runID)
}
