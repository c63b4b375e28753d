package tracker

import (
	"context"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/goroutine"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/domain/auction"
)

const (
	DefaultRefreshInterval = 10 * time.Second
	DefaultTickInterval    = 2 * time.Second
)

type AuctionRefresherCfg struct {
	Session auction.Usecase
	// Interval is the period of full snapshot refreshes
	Interval time.Duration
	// TickInterval is the period of price and time polls while the auction is live
	TickInterval time.Duration
	// Timeout bounds one refresh or tick, 0 means no bound
	Timeout time.Duration
	Metrics metrics.Service
	ErrorCh chan<- error
}

// AuctionRefresher keeps the session snapshot fresh. One goroutine owns both
// tickers, the fast one only exists while the auction is live.
type AuctionRefresher struct {
	session      auction.Usecase
	interval     time.Duration
	tickInterval time.Duration
	timeout      time.Duration
	metrics      metrics.Service
	errorCh      chan<- error
	triggerCh    chan struct{}
	stoppedCh    chan interface{}
}

func NewAuctionRefresher(cfg *AuctionRefresherCfg) *AuctionRefresher {
	r := &AuctionRefresher{
		session:      cfg.Session,
		interval:     cfg.Interval,
		tickInterval: cfg.TickInterval,
		timeout:      cfg.Timeout,
		metrics:      cfg.Metrics,
		errorCh:      cfg.ErrorCh,
		triggerCh:    make(chan struct{}, 1),
		stoppedCh:    make(chan interface{}),
	}
	if r.interval <= 0 {
		r.interval = DefaultRefreshInterval
	}
	if r.tickInterval <= 0 {
		r.tickInterval = DefaultTickInterval
	}
	if r.metrics == nil {
		r.metrics = metrics.New("refresher")
	}
	return r
}

func (r *AuctionRefresher) Start(ctx bCtx.Ctx) {
	goroutine.RecoverableGo(ctx, func() { r.loop(ctx) },
		goroutine.WithName("auction-refresher"),
		goroutine.WithOnPanic(func(ev *goroutine.PanicEvent) {
			if r.errorCh != nil {
				r.errorCh <- xerrors.Errorf("auction refresher panic: %v", ev.Panic)
			}
		}),
		goroutine.WithOnExit(func() { close(r.stoppedCh) }),
	)
}

func (r *AuctionRefresher) Wait() {
	<-r.stoppedCh
}

// Trigger asks for a full refresh as soon as possible
func (r *AuctionRefresher) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

func (r *AuctionRefresher) loop(ctx bCtx.Ctx) {
	coarse := time.NewTicker(r.interval)
	defer coarse.Stop()

	var fast *time.Ticker
	// fastCh stays nil while the auction is not live, a nil channel never fires
	var fastCh <-chan time.Time
	defer func() {
		if fast != nil {
			fast.Stop()
		}
	}()

	syncFast := func() {
		live := r.live()
		switch {
		case live && fast == nil:
			fast = time.NewTicker(r.tickInterval)
			fastCh = fast.C
			ctx.Info("auction live, fast poll started")
		case !live && fast != nil:
			fast.Stop()
			fast, fastCh = nil, nil
			ctx.Info("fast poll stopped")
		}
	}

	r.refresh(ctx)
	syncFast()
	for {
		select {
		case <-ctx.Done():
			return
		case <-coarse.C:
			r.refresh(ctx)
			syncFast()
		case <-r.triggerCh:
			r.refresh(ctx)
			syncFast()
		case <-fastCh:
			r.tick(ctx)
			syncFast()
		}
	}
}

func (r *AuctionRefresher) live() bool {
	s, err := r.session.GetSnapshot()
	if err != nil {
		return false
	}
	return s.Live()
}

func (r *AuctionRefresher) bounded(ctx bCtx.Ctx) (bCtx.Ctx, context.CancelFunc) {
	if r.timeout <= 0 {
		return bCtx.WithCancel(ctx)
	}
	return bCtx.WithTimeout(ctx, r.timeout)
}

func (r *AuctionRefresher) refresh(ctx bCtx.Ctx) {
	if _, ok := r.session.Current(); !ok {
		return
	}
	defer r.metrics.BumpTime("refresh.time").End()
	cctx, cancel := r.bounded(ctx)
	defer cancel()
	if err := r.session.Refresh(cctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.metrics.BumpSum("refresh.err", 1)
		ctx.WithFields(log.Fields{"err": err}).Warn("session.Refresh failed")
	}
}

func (r *AuctionRefresher) tick(ctx bCtx.Ctx) {
	cctx, cancel := r.bounded(ctx)
	defer cancel()
	if err := r.session.RefreshTicker(cctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.metrics.BumpSum("tick.err", 1)
		ctx.WithFields(log.Fields{"err": err}).Warn("session.RefreshTicker failed")
	}
}
