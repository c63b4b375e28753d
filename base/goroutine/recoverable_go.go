package goroutine

import (
	"runtime/debug"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
)

type PanicEvent struct {
	Name  string
	Panic interface{}
	Stack []byte
}

type options struct {
	name    string
	onPanic func(*PanicEvent)
	onExit  func()
}

type Option func(*options)

// WithName tags the goroutine in logs and panic events
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithOnPanic is called with the recovered panic before the exit hook
func WithOnPanic(f func(*PanicEvent)) Option {
	return func(o *options) {
		o.onPanic = f
	}
}

// WithOnExit is called last, whether f returned or panicked
func WithOnExit(f func()) Option {
	return func(o *options) {
		o.onExit = f
	}
}

// RecoverableGo runs f in a goroutine. A panic is logged through c and
// delivered on the returned channel, which is closed once f is done.
func RecoverableGo(c bCtx.Ctx, f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := c.Logger
	if o.name != "" {
		logger = logger.WithField("goroutine", o.name)
	}

	done := make(chan *PanicEvent, 1)
	go func() {
		defer close(done)
		if o.onExit != nil {
			defer o.onExit()
		}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			ev := &PanicEvent{Name: o.name, Panic: p, Stack: debug.Stack()}
			logger.WithFields(log.Fields{
				"err":   p,
				"stack": string(ev.Stack),
			}).Error("goroutine panicked")
			if o.onPanic != nil {
				o.onPanic(ev)
			}
			done <- ev
		}()
		f()
	}()
	return done
}
