package auction

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/x-xyz/auctiond/base/unit"
	"github.com/x-xyz/auctiond/domain"
)

// Amount is a base-unit quantity rendered as a decimal string
type Amount struct {
	Value    *big.Int
	Decimals int32
	// Native amounts render with at most unit.NativeDisplayDigits fractional digits
	Native bool
}

func NativeAmount(v *big.Int) Amount {
	return Amount{Value: v, Decimals: unit.EtherDecimals, Native: true}
}

func TokenAmount(v *big.Int, decimals int32) Amount {
	return Amount{Value: v, Decimals: decimals}
}

// Int returns the base units, zero when unset
func (a Amount) Int() *big.Int {
	if a.Value == nil {
		return new(big.Int)
	}
	return a.Value
}

func (a Amount) String() string {
	if a.Native {
		return unit.FormatNative(a.Int())
	}
	return unit.FormatToken(a.Int(), a.Decimals)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Snapshot is the derived view of one auction at one instant. A snapshot is
// never mutated after it is built; refreshes replace it wholesale.
type Snapshot struct {
	Auction domain.Address `json:"auction"`
	Token   domain.Address `json:"token"`

	CurrentPrice Amount `json:"currentPrice"`
	StartPrice   Amount `json:"startPrice"`
	ReservePrice Amount `json:"reservePrice"`
	// ClearingPrice is nil until the auction has ended
	ClearingPrice *Amount `json:"clearingPrice,omitempty"`

	TotalTokens     Amount  `json:"totalTokens"`
	TokensAtAuction Amount  `json:"tokensAtAuction"`
	TokensSold      Amount  `json:"tokensSold"`
	SoldPct         float64 `json:"soldPct"`

	TokenSymbol   string `json:"tokenSymbol"`
	TokenDecimals int32  `json:"tokenDecimals"`

	Started      bool `json:"started"`
	AuctionEnded bool `json:"auctionEnded"`
	// StartedAssumed is set when the contract has no started getter
	StartedAssumed bool `json:"startedAssumed,omitempty"`

	StartTime         int64  `json:"startTime"`
	AuctionDuration   int64  `json:"auctionDuration"`
	TimeRemaining     int64  `json:"timeRemaining"`
	TimeRemainingText string `json:"timeRemainingText"`

	Seller domain.Address `json:"seller"`
	// Caller is empty for a read-only snapshot
	Caller     domain.Address `json:"caller,omitempty"`
	MyBid      *Amount        `json:"myBid,omitempty"`
	MyTokenBal *Amount        `json:"myTokenBal,omitempty"`

	RefundAvailable bool      `json:"refundAvailable"`
	FetchedAt       time.Time `json:"fetchedAt"`
}

// Ticker is the fast-changing part of a snapshot
type Ticker struct {
	CurrentPrice  *big.Int
	TimeRemaining int64
	FetchedAt     time.Time
}

// Live reports whether price and time are meaningful
func (s *Snapshot) Live() bool {
	return s.Started && !s.AuctionEnded
}

// FullySold is true once every token on offer has been sold
func (s *Snapshot) FullySold() bool {
	total := s.TotalTokens.Int()
	return total.Sign() > 0 && s.TokensSold.Int().Cmp(total) >= 0
}

// WithTicker returns a copy carrying the ticker's price and time
func (s *Snapshot) WithTicker(t Ticker) *Snapshot {
	next := *s
	if t.CurrentPrice != nil {
		next.CurrentPrice = NativeAmount(t.CurrentPrice)
	}
	next.TimeRemaining = t.TimeRemaining
	next.TimeRemainingText = unit.FormatDuration(t.TimeRemaining)
	next.FetchedAt = t.FetchedAt
	return &next
}

// SoldFromBalance derives (sold, pct) from the tokens still held by the auction
func SoldFromBalance(total, atAuction *big.Int) (*big.Int, float64) {
	sold := new(big.Int).Sub(total, atAuction)
	if sold.Sign() < 0 {
		sold.SetInt64(0)
	}
	return sold, unit.Pct(sold, total)
}

// SoldFromCommitted derives (sold, pct) from the native amount committed at price.
// The result is capped at total.
func SoldFromCommitted(total, committed, price *big.Int, decimals int32) (*big.Int, float64) {
	if price == nil || price.Sign() <= 0 {
		return new(big.Int), 0
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	sold := new(big.Int).Mul(committed, scale)
	sold.Quo(sold, price)
	if sold.Cmp(total) > 0 {
		sold.Set(total)
	}
	return sold, unit.Pct(sold, total)
}
