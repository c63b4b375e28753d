package usecase

import (
	"sync"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/domain/deployment"
)

type logSink struct{}

func NewLogSink() deployment.StatusSink {
	return logSink{}
}

func (logSink) Emit(ctx bCtx.Ctx, ev deployment.Event) {
	fields := log.Fields{"runId": ev.RunId, "phase": ev.Phase}
	if ev.TxHash != "" {
		fields["tx"] = ev.TxHash
	}
	if ev.Err != "" {
		fields["err"] = ev.Err
		ctx.WithFields(fields).Warn(ev.Message)
		return
	}
	ctx.WithFields(fields).Info(ev.Message)
}

// historySink keeps the latest events of one run
type historySink struct {
	mu     sync.Mutex
	limit  int
	events []deployment.Event
}

func newHistorySink(limit int) *historySink {
	return &historySink{limit: limit}
}

func (h *historySink) Emit(_ bCtx.Ctx, ev deployment.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	if over := len(h.events) - h.limit; h.limit > 0 && over > 0 {
		h.events = append([]deployment.Event(nil), h.events[over:]...)
	}
}

func (h *historySink) Events() []deployment.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]deployment.Event(nil), h.events...)
}

type multiSink []deployment.StatusSink

func (m multiSink) Emit(ctx bCtx.Ctx, ev deployment.Event) {
	for _, s := range m {
		s.Emit(ctx, ev)
	}
}
