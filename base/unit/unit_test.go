package unit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctiond/domain"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestToBaseUnits() {
	tests := []struct {
		desc     string
		in       string
		decimals int32
		out      string
		err      error
	}{
		{desc: "empty is zero", in: "", decimals: 18, out: "0"},
		{desc: "whole ether", in: "1", decimals: 18, out: "1000000000000000000"},
		{desc: "fraction", in: "0.5", decimals: 18, out: "500000000000000000"},
		{desc: "six decimals", in: "12.345678", decimals: 6, out: "12345678"},
		{desc: "zero decimals", in: "1000", decimals: 0, out: "1000"},
		{desc: "non numeric", in: "abc", decimals: 18, err: domain.ErrInvalidAmount},
		{desc: "negative", in: "-1", decimals: 18, err: domain.ErrInvalidAmount},
		{desc: "too precise", in: "0.0000001", decimals: 6, err: domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		v, err := ToBaseUnits(tt.in, tt.decimals)
		if tt.err != nil {
			ts.ErrorIs(err, tt.err, tt.desc)
			continue
		}
		ts.NoError(err, tt.desc)
		ts.Equal(tt.out, v.String(), tt.desc)
	}
}

func (ts *testsuite) TestRoundTrip() {
	values := []int64{0, 1, 7, 999999, 1000000, 123456789, 5000000000}
	for d := int32(0); d <= 6; d++ {
		for _, x := range values {
			s := FromBaseUnits(big.NewInt(x), d)
			back, err := ToBaseUnits(s, d)
			ts.NoError(err)
			ts.Equal(big.NewInt(x).String(), back.String(), "x=%d d=%d s=%s", x, d, s)
		}
	}
}

func (ts *testsuite) TestFromBaseUnits() {
	ts.Equal("1.5", FromBaseUnits(big.NewInt(1500), 3))
	ts.Equal("0", FromBaseUnits(nil, 18))
	ts.Equal("1000", FormatToken(big.NewInt(1000), 0))
}

func (ts *testsuite) TestFormatNativeTruncates() {
	v, _ := new(big.Int).SetString("1234567890123456789", 10)
	ts.Equal("1.234567", FormatNative(v))
	ts.Equal("0", FormatNative(big.NewInt(1)))
}

func (ts *testsuite) TestFormatDuration() {
	ts.Equal("0s", FormatDuration(0))
	ts.Equal("0s", FormatDuration(-5))
	ts.Equal("2m 5s", FormatDuration(125))
	ts.Equal("0m 59s", FormatDuration(59))
}

func (ts *testsuite) TestPct() {
	ts.Equal(60.0, Pct(big.NewInt(600), big.NewInt(1000)))
	ts.Equal(0.0, Pct(big.NewInt(600), big.NewInt(0)))
	ts.Equal(100.0, Pct(big.NewInt(2000), big.NewInt(1000)))
	ts.Equal(0.0, Pct(big.NewInt(-1), big.NewInt(1000)))
}
