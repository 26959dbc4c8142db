package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnPrepareStart(sections int) {
	h.logger.Debug("layout pass started", "sections", sections)
}

func (h *LogHooks) OnPrepareComplete(sections, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout pass aborted", "sections", sections, "err", err)
		return
	}
	h.logger.Debug("layout pass complete", "sections", sections, "items", items, "took", d)
}

func (h *LogHooks) OnInvalidate(reason string) {
	h.logger.Debug("layout invalidated", "reason", reason)
}

func (h *LogHooks) OnStoreHit(_ context.Context, backend string) {
	h.logger.Debug("store hit", "backend", backend)
}

func (h *LogHooks) OnStoreMiss(_ context.Context, backend string) {
	h.logger.Debug("store miss", "backend", backend)
}

func (h *LogHooks) OnStorePut(_ context.Context, backend string, size int) {
	h.logger.Debug("store put", "backend", backend, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ StoreHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
