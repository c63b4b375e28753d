package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctiond/domain"
)

type ReaderSuite struct {
	suite.Suite
}

func (s *ReaderSuite) SetupTest() {
	timeNow = func() time.Time { return fixedNow }
}

func (s *ReaderSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *ReaderSuite) TestLiveSnapshot() {
	e := newEnv(nil, watchWallet())
	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)

	s.Equal(domain.ToAddress(auctionAddr), snap.Auction)
	s.Equal(domain.ToAddress(tokenAddr), snap.Token)
	s.Equal(domain.ToAddress(sellerAddr), snap.Seller)
	s.Equal("1.5", snap.CurrentPrice.String())
	s.Equal("2", snap.StartPrice.String())
	s.Equal("1", snap.ReservePrice.String())
	s.Nil(snap.ClearingPrice)
	s.Equal("SALE", snap.TokenSymbol)
	s.Equal(int32(18), snap.TokenDecimals)
	s.True(snap.Started)
	s.False(snap.StartedAssumed)
	s.False(snap.AuctionEnded)
	s.Equal(int64(600), snap.TimeRemaining)
	s.Equal("10m 0s", snap.TimeRemainingText)
	s.Equal(int64(1200), snap.AuctionDuration)
	// 900 committed at 1.5 per token
	s.Equal("600", snap.TokensSold.String())
	s.Equal(60.0, snap.SoldPct)
	s.Equal("400", snap.TokensAtAuction.String())
	s.Equal(domain.ToAddress(watchAddr), snap.Caller)
	s.Equal("3", snap.MyBid.String())
	s.Equal("2", snap.MyTokenBal.String())
	s.True(snap.RefundAvailable)
	s.Equal(fixedNow, snap.FetchedAt)
}

func (s *ReaderSuite) TestReadOnlySnapshotSkipsUserReads() {
	e := newEnv(nil, nil)
	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	s.True(snap.Caller.IsEmpty())
	s.Nil(snap.MyBid)
	s.Nil(snap.MyTokenBal)
	s.Equal(0, e.backend.Calls(auctionAddr, "bids"))
}

func (s *ReaderSuite) TestLegacyFallbacks() {
	e := newEnv(&legacyAuctionABI, nil)
	e.backend.Fail(auctionAddr, "getCurrentPrice", errors.New("execution reverted: not started"))
	e.backend.Fail(tokenAddr, "decimals", errors.New("execution reverted"))
	startTime := fixedNow.Unix() - 125

	e.backend.Answer(auctionAddr, "startTime", big.NewInt(startTime))
	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)

	s.True(snap.Started)
	s.True(snap.StartedAssumed)
	s.Equal("2", snap.CurrentPrice.String())
	s.Equal(int32(18), snap.TokenDecimals)
	s.Equal(int64(DefaultDuration/time.Second), snap.AuctionDuration)
	s.Equal(int64(1075), snap.TimeRemaining)
	// balance delta: 1000 - 400
	s.Equal("600", snap.TokensSold.String())
	s.Equal(60.0, snap.SoldPct)
	s.True(snap.RefundAvailable)
}

func (s *ReaderSuite) TestTimeRemainingFallbackWithinOneSecond() {
	timeNow = time.Now
	e := newEnv(nil, nil)
	e.backend.Fail(auctionAddr, "getTimeRemaining", errors.New("execution reverted"))
	startTime := time.Now().Unix() - 100
	e.backend.Answer(auctionAddr, "startTime", big.NewInt(startTime))

	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	expected := startTime + 1200 - time.Now().Unix()
	s.InDelta(expected, snap.TimeRemaining, 1)
}

func (s *ReaderSuite) TestEndedUsesClearingPrice() {
	e := newEnv(nil, nil)
	e.backend.Answer(auctionAddr, "auctionEnded", true)
	e.backend.Answer(auctionAddr, "clearingPrice", eth(3))
	e.backend.Answer(auctionAddr, "getTimeRemaining", big.NewInt(0))

	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	s.True(snap.AuctionEnded)
	s.Require().NotNil(snap.ClearingPrice)
	s.Equal("3", snap.ClearingPrice.String())
	s.Equal("3", snap.CurrentPrice.String())
	// 900 committed at 3 per token
	s.Equal("300", snap.TokensSold.String())
	s.Equal(30.0, snap.SoldPct)

	e.backend.Fail(auctionAddr, "clearingPrice", errors.New("execution reverted"))
	snap, err = NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	s.Nil(snap.ClearingPrice)
	s.Equal("0", snap.CurrentPrice.String())
	s.Equal("600", snap.TokensSold.String())
}

func (s *ReaderSuite) TestZeroTotalTokens() {
	e := newEnv(&legacyAuctionABI, nil)
	e.backend.Answer(auctionAddr, "totalTokens", big.NewInt(0))
	e.backend.AnswerFunc(tokenAddr, "balanceOf", func([]interface{}) ([]interface{}, error) {
		return []interface{}{big.NewInt(0)}, nil
	})
	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	s.Equal(0.0, snap.SoldPct)
	s.Equal("0", snap.TokensSold.String())
}

func (s *ReaderSuite) TestRequiredReadFails() {
	e := newEnv(nil, nil)
	boom := errors.New("execution reverted: boom")
	e.backend.Fail(auctionAddr, "totalTokens", boom)
	_, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Equal(boom, err)

	e = newEnv(&legacyAuctionABI, nil)
	e.backend.Fail(auctionAddr, "startTime", boom)
	_, err = NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Equal(boom, err)
}

func (s *ReaderSuite) TestOptionalReadTransportErrorFailsRead() {
	reset := errors.New("dial tcp: connection reset by peer")
	optionals := []struct {
		addr   common.Address
		method string
	}{
		{auctionAddr, "started"},
		{tokenAddr, "decimals"},
		{auctionAddr, "getCurrentPrice"},
		{auctionAddr, "getTimeRemaining"},
		{auctionAddr, "AUCTION_DURATION"},
		{auctionAddr, "totalCommitted"},
	}
	for _, o := range optionals {
		e := newEnv(nil, nil)
		e.backend.Answer(auctionAddr, "started", false)
		e.backend.Fail(o.addr, o.method, reset)
		snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
		s.ErrorIs(err, reset, o.method)
		s.Nil(snap, o.method)
	}
}

func (s *ReaderSuite) TestStartedFalseIsNotAssumed() {
	e := newEnv(nil, nil)
	e.backend.Answer(auctionAddr, "started", false)
	snap, err := NewReader(&ReaderCfg{Registry: e.registry}).Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)
	s.False(snap.Started)
	s.False(snap.StartedAssumed)
}

func (s *ReaderSuite) TestReadTickerTransportErrorFails() {
	e := newEnv(nil, nil)
	r := NewReader(&ReaderCfg{Registry: e.registry})
	snap, err := r.Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)

	reset := errors.New("dial tcp: connection reset by peer")
	e.backend.Fail(auctionAddr, "getCurrentPrice", reset)
	_, err = r.ReadTicker(e.ctx, snap)
	s.ErrorIs(err, reset)
}

func (s *ReaderSuite) TestReadTicker() {
	e := newEnv(nil, nil)
	r := NewReader(&ReaderCfg{Registry: e.registry})
	snap, err := r.Read(e.ctx, domain.ToAddress(auctionAddr))
	s.Require().NoError(err)

	e.backend.Answer(auctionAddr, "getCurrentPrice", eth(1))
	e.backend.Fail(auctionAddr, "getTimeRemaining", errors.New("execution reverted"))
	t, err := r.ReadTicker(e.ctx, snap)
	s.Require().NoError(err)
	s.Equal(eth(1), t.CurrentPrice)
	s.Equal(int64(600), t.TimeRemaining)
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}
