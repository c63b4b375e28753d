package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctiond/domain"
)

type dataErr struct {
	msg  string
	data interface{}
}

func (e dataErr) Error() string          { return e.msg }
func (e dataErr) ErrorData() interface{} { return e.data }

func TestClassify(t *testing.T) {
	req := require.New(t)
	req.Nil(Classify(nil))

	raw := errors.New("MetaMask Tx Signature: User denied transaction signature.")
	err := Classify(raw)
	req.ErrorIs(err, domain.ErrUserRejected)
	req.Equal(raw, errors.Unwrap(err))

	raw = errors.New("execution reverted: Auction already ended")
	err = Classify(raw)
	req.ErrorIs(err, domain.ErrCallReverted)
	req.Equal("call reverted: Auction already ended", err.Error())

	wrapped := xerrors.Errorf("deploy: %w", domain.ErrAddressNotFound)
	req.Equal(wrapped, Classify(wrapped))

	other := errors.New("connection refused")
	req.Equal(other, Classify(other))
}

func TestRevertReasonFromData(t *testing.T) {
	req := require.New(t)
	// Error(string) selector + abi encoded "Too early"
	data := "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000009" +
		"546f6f206561726c790000000000000000000000000000000000000000000000"
	reason, ok := RevertReason(dataErr{msg: "execution reverted", data: data})
	req.True(ok)
	req.Equal("Too early", reason)

	_, ok = RevertReason(errors.New("timeout"))
	req.False(ok)
}
