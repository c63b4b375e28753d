package chain

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/x-xyz/auctiond/domain"
)

const revertPrefix = "execution reverted"

// wallet messages for a declined prompt
var rejectMarkers = []string{"user denied", "user rejected", "rejected by user", "request rejected"}

var taxonomy = []error{
	domain.ErrNoWallet,
	domain.ErrWrongChain,
	domain.ErrSignerUnavailable,
	domain.ErrInvalidAmount,
	domain.ErrInvalidPriceOrdering,
	domain.ErrCallReverted,
	domain.ErrUserRejected,
	domain.ErrAddressNotFound,
	domain.ErrTokenNotFound,
	domain.ErrCapabilityUnavailable,
}

// Error tags a raw chain error with its taxonomy kind. The raw error stays
// reachable through Unwrap.
type Error struct {
	Kind   error
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Kind.Error() + ": " + e.Reason
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Classify maps a raw error to the taxonomy. Unknown errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return err
		}
	}
	msg := strings.ToLower(err.Error())
	for _, m := range rejectMarkers {
		if strings.Contains(msg, m) {
			return &Error{Kind: domain.ErrUserRejected, Err: err}
		}
	}
	if reason, ok := RevertReason(err); ok {
		return &Error{Kind: domain.ErrCallReverted, Reason: reason, Err: err}
	}
	if strings.Contains(msg, "revert") {
		return &Error{Kind: domain.ErrCallReverted, Err: err}
	}
	return err
}

// RevertReason extracts the revert string carried by a call error
func RevertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if hexData, ok := dataErr.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(hexData); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason, true
				}
			}
		}
	}
	msg := err.Error()
	if i := strings.Index(msg, revertPrefix+": "); i >= 0 {
		return msg[i+len(revertPrefix)+2:], true
	}
	return "", false
}
