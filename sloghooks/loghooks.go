package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/gencache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SweptEvery   uint64
	DiscardEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	sweptCtr   atomic.Uint64
	discardCtr atomic.Uint64
}

var _ gencache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Swept(cache string, dropped int) {
	if h.l == nil || !sample(h.opts.SweptEvery, &h.sweptCtr) {
		return
	}
	h.l.Debug("gencache.swept",
		"cache", cache,
		"dropped", dropped)
}

func (h *Hooks) ComputeDiscarded(cache string, key any) {
	if h.l == nil || !sample(h.opts.DiscardEvery, &h.discardCtr) {
		return
	}
	h.l.Debug("gencache.compute_discarded",
		"cache", cache,
		"key", h.redact(fmt.Sprint(key)))
}
