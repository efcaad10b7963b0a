package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/gencache"
)

var _ gencache.Logger = LogrusLogger{}

// LogrusLogger forwards cache events to a logrus.Entry. The zero value
// logs through the logrus standard logger.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f gencache.Fields) { l.ent(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f gencache.Fields)  { l.ent(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f gencache.Fields)  { l.ent(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f gencache.Fields) { l.ent(f).Error(msg) }

func (l LogrusLogger) ent(f gencache.Fields) *logrus.Entry {
	e := l.E
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	if len(f) == 0 {
		return e
	}
	return e.WithFields(logrus.Fields(f))
}
