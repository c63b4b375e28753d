package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput  = errors.New("Given Param is not valid")
	ErrInvalidAddress = errors.New("Invalid address")

	// wallet and network
	ErrNoWallet          = errors.New("no wallet available")
	ErrWrongChain        = errors.New("wrong chain")
	ErrSignerUnavailable = errors.New("signer unavailable, wallet is read-only")

	// input
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidPriceOrdering = errors.New("starting price must be greater than reserve price")

	// chain
	ErrCallReverted          = errors.New("call reverted")
	ErrUserRejected          = errors.New("user rejected")
	ErrAddressNotFound       = errors.New("expected address event not found in receipt")
	ErrCapabilityUnavailable = errors.New("contract capability unavailable")

	// workflow
	ErrTokenNotFound = errors.New("token not found")
	ErrNoAuction     = errors.New("no current auction")
	ErrWorkflowBusy  = errors.New("workflow step already in progress")
	ErrNoSnapshot    = errors.New("no snapshot yet")
	ErrNotPermitted  = errors.New("action not permitted")
)
