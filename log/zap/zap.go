package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/gencache"
)

var _ gencache.Logger = ZapLogger{}

// ZapLogger forwards cache events to a zap.Logger.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f gencache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f gencache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f gencache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f gencache.Fields) { z.L.Error(msg, zf(f)...) }

// zf sorts keys so repeated events render their fields in one order.
func zf(f gencache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
