package auction

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSoldFromBalance(t *testing.T) {
	req := require.New(t)
	sold, pct := SoldFromBalance(big.NewInt(1000), big.NewInt(400))
	req.Equal(int64(600), sold.Int64())
	req.Equal(60.0, pct)

	sold, pct = SoldFromBalance(big.NewInt(0), big.NewInt(0))
	req.Equal(int64(0), sold.Int64())
	req.Equal(0.0, pct)

	sold, _ = SoldFromBalance(big.NewInt(100), big.NewInt(150))
	req.Equal(int64(0), sold.Int64())
}

func TestSoldFromCommitted(t *testing.T) {
	req := require.New(t)
	ether := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	total := new(big.Int).Mul(big.NewInt(1000), ether)
	// 3 ether committed at 0.01 ether per token
	committed := new(big.Int).Mul(big.NewInt(3), ether)
	price := new(big.Int).Quo(ether, big.NewInt(100))

	sold, pct := SoldFromCommitted(total, committed, price, 18)
	req.Equal(new(big.Int).Mul(big.NewInt(300), ether), sold)
	req.InDelta(30.0, pct, 1e-9)

	committed = new(big.Int).Mul(big.NewInt(50), ether)
	sold, pct = SoldFromCommitted(total, committed, price, 18)
	req.Equal(total, sold)
	req.Equal(100.0, pct)

	sold, pct = SoldFromCommitted(total, committed, big.NewInt(0), 18)
	req.Equal(int64(0), sold.Int64())
	req.Equal(0.0, pct)
}

func TestWithTickerCopies(t *testing.T) {
	req := require.New(t)
	s := live()
	s.CurrentPrice = NativeAmount(big.NewInt(5))
	at := time.Unix(1700000000, 0)

	next := s.WithTicker(Ticker{CurrentPrice: big.NewInt(4), TimeRemaining: 125, FetchedAt: at})
	req.Equal(int64(4), next.CurrentPrice.Int().Int64())
	req.Equal("2m 5s", next.TimeRemainingText)
	req.Equal(at, next.FetchedAt)
	req.Equal(int64(5), s.CurrentPrice.Int().Int64())
	req.Equal(int64(300), s.TimeRemaining)
	req.True(next.Live())
}

func TestAmountJSON(t *testing.T) {
	req := require.New(t)
	ether := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	raw, err := json.Marshal(struct {
		P Amount  `json:"p"`
		T Amount  `json:"t"`
		U *Amount `json:"u,omitempty"`
	}{
		P: NativeAmount(new(big.Int).Add(ether, big.NewInt(1))),
		T: TokenAmount(big.NewInt(1500), 3),
	})
	req.NoError(err)
	req.JSONEq(`{"p":"1","t":"1.5"}`, string(raw))
}
