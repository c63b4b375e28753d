package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/unit"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/auction"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

// DefaultDuration is assumed when the auction exposes no duration getter
const DefaultDuration = 20 * time.Minute

var timeNow = time.Now

const (
	keyStartPrice     = "startPrice"
	keyReservePrice   = "reservePrice"
	keyTotalTokens    = "totalTokens"
	keyEnded          = "auctionEnded"
	keyStarted        = "started"
	keySymbol         = "symbol"
	keyDecimals       = "decimals"
	keyAtAuction      = "tokensAtAuction"
	keySeller         = "seller"
	keyStartTime      = "startTime"
	keyDuration       = "duration"
	keyCurrentPrice   = "currentPrice"
	keyClearingPrice  = "clearingPrice"
	keyTimeRemaining  = "timeRemaining"
	keyTotalCommitted = "totalCommitted"
	keyMyBid          = "myBid"
	keyMyTokenBal     = "myTokenBal"
)

type ReaderCfg struct {
	Registry contract.Registry
}

type reader struct {
	registry contract.Registry
}

func NewReader(cfg *ReaderCfg) auction.Reader {
	return &reader{registry: cfg.Registry}
}

type outcome struct {
	key string
	v   interface{}
	err error
}

type read struct {
	key string
	fn  func() (interface{}, error)
}

type results map[string]outcome

var errNotRead = errors.New("value not read")

func (r results) get(key string) (interface{}, error) {
	o, ok := r[key]
	if !ok {
		return nil, errNotRead
	}
	return o.v, o.err
}

func (r results) bigInt(key string) (*big.Int, error) {
	v, err := r.get(key)
	if err != nil {
		return nil, err
	}
	return v.(*big.Int), nil
}

func (r results) flag(key string) (bool, error) {
	v, err := r.get(key)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (r results) seconds(key string) (int64, error) {
	v, err := r.get(key)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (r results) addr(key string) (domain.Address, error) {
	v, err := r.get(key)
	if err != nil {
		return "", err
	}
	return v.(domain.Address), nil
}

// fanOut issues every read before awaiting any of them
func fanOut(reads []read) results {
	b := goroutines.NewBatch(len(reads), goroutines.WithBatchSize(len(reads)))
	defer b.Close()
	for _, rd := range reads {
		rd := rd
		b.Queue(func() (interface{}, error) {
			v, err := rd.fn()
			return outcome{key: rd.key, v: v, err: err}, nil
		})
	}
	b.QueueComplete()

	res := results{}
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		o := ret.Value().(outcome)
		res[o.key] = o
	}
	return res
}

func (rd *reader) Read(ctx bCtx.Ctx, addr domain.Address) (*auction.Snapshot, error) {
	ctx = bCtx.WithLogFields(ctx, log.Fields{"auction": addr})
	caller, connected := rd.registry.Caller()

	a, err := rd.registry.Auction(ctx, addr, chain.ModeRead)
	if err != nil {
		ctx.WithField("err", err).Error("registry.Auction failed")
		return nil, err
	}
	tokenAddr, err := a.Token(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("auction.Token failed")
		return nil, err
	}
	t, err := rd.registry.Token(ctx, tokenAddr, chain.ModeRead)
	if err != nil {
		ctx.WithField("err", err).Error("registry.Token failed")
		return nil, err
	}

	reads := []read{
		{keyStartPrice, func() (interface{}, error) { return a.StartPrice(ctx) }},
		{keyReservePrice, func() (interface{}, error) { return a.ReservePrice(ctx) }},
		{keyTotalTokens, func() (interface{}, error) { return a.TotalTokens(ctx) }},
		{keyEnded, func() (interface{}, error) { return a.AuctionEnded(ctx) }},
		{keyStarted, func() (interface{}, error) { return a.Started(ctx) }},
		{keySymbol, func() (interface{}, error) { return t.Symbol(ctx) }},
		{keyDecimals, func() (interface{}, error) { return t.Decimals(ctx) }},
		{keyAtAuction, func() (interface{}, error) { return t.BalanceOf(ctx, addr) }},
		{keySeller, func() (interface{}, error) { return a.Seller(ctx) }},
		{keyStartTime, func() (interface{}, error) { return a.StartTime(ctx) }},
		{keyDuration, func() (interface{}, error) { return a.Duration(ctx) }},
		{keyCurrentPrice, func() (interface{}, error) { return a.CurrentPrice(ctx) }},
		{keyClearingPrice, func() (interface{}, error) { return a.ClearingPrice(ctx) }},
		{keyTimeRemaining, func() (interface{}, error) { return a.TimeRemaining(ctx) }},
		{keyTotalCommitted, func() (interface{}, error) { return a.TotalCommitted(ctx) }},
	}
	if connected {
		reads = append(reads,
			read{keyMyBid, func() (interface{}, error) { return a.BidOf(ctx, caller) }},
			read{keyMyTokenBal, func() (interface{}, error) { return t.BalanceOf(ctx, caller) }},
		)
	}
	res := fanOut(reads)
	now := timeNow()

	snap, err := assemble(ctx, res, now)
	if err != nil {
		return nil, err
	}
	snap.Auction = addr
	snap.Token = tokenAddr
	snap.RefundAvailable = a.RefundCapability().IsAvailable()
	if connected {
		snap.Caller = caller
		myBid, err := res.bigInt(keyMyBid)
		if err != nil {
			ctx.WithField("err", err).Error("auction.BidOf failed")
			return nil, err
		}
		myBal, err := res.bigInt(keyMyTokenBal)
		if err != nil {
			ctx.WithField("err", err).Error("token.BalanceOf caller failed")
			return nil, err
		}
		bid := auction.NativeAmount(myBid)
		bal := auction.TokenAmount(myBal, snap.TokenDecimals)
		snap.MyBid = &bid
		snap.MyTokenBal = &bal
	}
	return snap, nil
}

// assemble reduces the reads into a snapshot. Fallbacks exist only for
// started, decimals, current price, clearing price, time remaining, duration
// and the committed amount, and only when the getter is absent. Any other
// failed read fails the whole snapshot.
func assemble(ctx bCtx.Ctx, res results, now time.Time) (*auction.Snapshot, error) {
	required := []string{keyStartPrice, keyReservePrice, keyTotalTokens, keyEnded, keySymbol, keyAtAuction, keySeller}
	for _, key := range required {
		if _, err := res.get(key); err != nil {
			ctx.WithFields(log.Fields{"err": err, "read": key}).Error("required read failed")
			return nil, err
		}
	}
	startPrice, _ := res.bigInt(keyStartPrice)
	reservePrice, _ := res.bigInt(keyReservePrice)
	total, _ := res.bigInt(keyTotalTokens)
	ended, _ := res.flag(keyEnded)
	atAuction, _ := res.bigInt(keyAtAuction)
	seller, _ := res.addr(keySeller)
	symbolV, _ := res.get(keySymbol)

	decimals := unit.DefaultTokenDecimals
	if v, ok, err := optional(ctx, res, keyDecimals); err != nil {
		return nil, err
	} else if ok {
		decimals = v.(int32)
	}

	started, startedAssumed := true, true
	if v, ok, err := optional(ctx, res, keyStarted); err != nil {
		return nil, err
	} else if ok {
		started, startedAssumed = v.(bool), false
	}

	snap := &auction.Snapshot{
		StartPrice:      auction.NativeAmount(startPrice),
		ReservePrice:    auction.NativeAmount(reservePrice),
		TotalTokens:     auction.TokenAmount(total, decimals),
		TokensAtAuction: auction.TokenAmount(atAuction, decimals),
		TokenSymbol:     symbolV.(string),
		TokenDecimals:   decimals,
		Started:         started || ended,
		StartedAssumed:  startedAssumed,
		AuctionEnded:    ended,
		Seller:          seller,
		FetchedAt:       now,
	}

	// price the committed amount is valued at
	var price *big.Int
	if ended {
		clearing := new(big.Int)
		v, ok, err := optional(ctx, res, keyClearingPrice)
		if err != nil {
			return nil, err
		}
		if ok {
			clearing = v.(*big.Int)
			c := auction.NativeAmount(clearing)
			snap.ClearingPrice = &c
		}
		snap.CurrentPrice = auction.NativeAmount(clearing)
		price = clearing
	} else {
		current := startPrice
		v, ok, err := optional(ctx, res, keyCurrentPrice)
		if err != nil {
			return nil, err
		}
		if ok {
			current = v.(*big.Int)
		}
		snap.CurrentPrice = auction.NativeAmount(current)
		price = current
	}

	startTime, startTimeErr := res.seconds(keyStartTime)
	duration := int64(DefaultDuration / time.Second)
	if v, ok, err := optional(ctx, res, keyDuration); err != nil {
		return nil, err
	} else if ok {
		duration = v.(int64)
	}
	snap.StartTime = startTime
	snap.AuctionDuration = duration
	remaining, ok, err := optional(ctx, res, keyTimeRemaining)
	if err != nil {
		return nil, err
	}
	if ok {
		snap.TimeRemaining = remaining.(int64)
	} else {
		if startTimeErr != nil {
			ctx.WithField("err", startTimeErr).Error("startTime failed without getTimeRemaining")
			return nil, startTimeErr
		}
		snap.TimeRemaining = computeRemaining(startTime, duration, now)
	}
	if snap.TimeRemaining < 0 {
		snap.TimeRemaining = 0
	}
	snap.TimeRemainingText = unit.FormatDuration(snap.TimeRemaining)

	var sold *big.Int
	committed, ok, err := optional(ctx, res, keyTotalCommitted)
	if err != nil {
		return nil, err
	}
	if ok && price != nil && price.Sign() > 0 {
		sold, snap.SoldPct = auction.SoldFromCommitted(total, committed.(*big.Int), price, decimals)
	} else {
		sold, snap.SoldPct = auction.SoldFromBalance(total, atAuction)
	}
	snap.TokensSold = auction.TokenAmount(sold, decimals)
	return snap, nil
}

// absent reports whether err means the contract does not serve the getter:
// the ABI lacks it or the call reverted. Transport failures are not absence.
func absent(err error) bool {
	c := chain.Classify(err)
	return errors.Is(c, domain.ErrCapabilityUnavailable) || errors.Is(c, domain.ErrCallReverted)
}

// optional returns the value of a read that has a fallback. ok is false when
// the getter is absent; any other failure is returned.
func optional(ctx bCtx.Ctx, res results, key string) (v interface{}, ok bool, err error) {
	v, err = res.get(key)
	if err == nil {
		return v, true, nil
	}
	if absent(err) {
		ctx.WithFields(log.Fields{"err": err, "read": key}).Debug("getter unavailable, using fallback")
		return nil, false, nil
	}
	ctx.WithFields(log.Fields{"err": err, "read": key}).Error("optional read failed")
	return nil, false, err
}

func computeRemaining(startTime, duration int64, now time.Time) int64 {
	remaining := startTime + duration - now.Unix()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (rd *reader) ReadTicker(ctx bCtx.Ctx, s *auction.Snapshot) (auction.Ticker, error) {
	a, err := rd.registry.Auction(ctx, s.Auction, chain.ModeRead)
	if err != nil {
		ctx.WithField("err", err).Error("registry.Auction failed")
		return auction.Ticker{}, err
	}
	res := fanOut([]read{
		{keyCurrentPrice, func() (interface{}, error) { return a.CurrentPrice(ctx) }},
		{keyTimeRemaining, func() (interface{}, error) { return a.TimeRemaining(ctx) }},
	})
	now := timeNow()

	t := auction.Ticker{FetchedAt: now, CurrentPrice: s.StartPrice.Int()}
	if v, ok, err := optional(ctx, res, keyCurrentPrice); err != nil {
		return auction.Ticker{}, err
	} else if ok {
		t.CurrentPrice = v.(*big.Int)
	}
	if v, ok, err := optional(ctx, res, keyTimeRemaining); err != nil {
		return auction.Ticker{}, err
	} else if ok {
		t.TimeRemaining = v.(int64)
	} else {
		t.TimeRemaining = computeRemaining(s.StartTime, s.AuctionDuration, now)
	}
	return t, nil
}
