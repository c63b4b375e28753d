package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type ChainId int64

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// IsZero is true for the unset and the all-zero address
func (a Address) IsZero() bool {
	return a.IsEmpty() || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

func (a Address) String() string {
	return string(a)
}

// ToAddress converts a go-ethereum address to its lower hex form
func ToAddress(a common.Address) Address {
	return Address(strings.ToLower(a.Hex()))
}

type TxHash string

type Table string

const (
	TableDeployments Table = "auction_deployments"
)
