package ingest

import (
	"sync"

	"github.com/openelexva/reconcile/internal/common"
)

// WarnContext deduplicates repeated data-quality warnings within one
// ingestion run. Feeds routinely repeat the same defect thousands of
// times, so each distinct key logs once.
type WarnContext struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewWarnContext returns an empty warn context.
func NewWarnContext() *WarnContext {
	return &WarnContext{seen: make(map[string]bool)}
}

// Warn logs the message at warn level the first time key is seen.
func (w *WarnContext) Warn(key, msg string, fields common.Fields) {
	w.mu.Lock()
	already := w.seen[key]
	if !already {
		w.seen[key] = true
	}
	w.mu.Unlock()

	if !already {
		common.LogWarn(msg, fields)
	}
}

// Count reports how many distinct warnings fired.
func (w *WarnContext) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}
