package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

var tokenFactoryABIJson = `[
{"type":"function","name":"tokenCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"tokens","stateMutability":"view","inputs":[{"type":"uint256","name":"index"}],"outputs":[{"type":"address"}]},
{"type":"function","name":"deployToken","stateMutability":"nonpayable","inputs":[{"type":"string","name":"name"},{"type":"string","name":"ticker"},{"type":"uint256","name":"quantity"}],"outputs":[{"type":"address"}]},
{"type":"event","anonymous":false,"name":"TokenDeployed","inputs":[{"type":"address","name":"tokenAddress","indexed":true},{"type":"address","name":"owner","indexed":true},{"type":"string","name":"name"},{"type":"string","name":"symbol"},{"type":"uint256","name":"initialSupply"}]}
]`

var auctionFactoryABIJson = `[
{"type":"function","name":"deployAuction","stateMutability":"nonpayable","inputs":[{"type":"address","name":"token"},{"type":"uint256","name":"quantity"},{"type":"uint256","name":"startPrice"},{"type":"uint256","name":"reservePrice"}],"outputs":[{"type":"address"}]},
{"type":"event","anonymous":false,"name":"AuctionDeployed","inputs":[{"type":"address","name":"auctionAddress","indexed":true},{"type":"address","name":"token","indexed":true},{"type":"address","name":"seller","indexed":true},{"type":"uint256","name":"totalTokens"},{"type":"uint256","name":"startPrice"},{"type":"uint256","name":"reservePrice"}]}
]`

var (
	TokenDeployedSig   = TokenFactoryABI.Events["TokenDeployed"].ID
	AuctionDeployedSig = AuctionFactoryABI.Events["AuctionDeployed"].ID
)

var errMalformedLog = xerrors.New("malformed log")

type TokenDeployedLog struct {
	TokenAddress  common.Address // indexed
	Owner         common.Address // indexed
	Name          string
	Symbol        string
	InitialSupply *big.Int
}

type AuctionDeployedLog struct {
	AuctionAddress common.Address // indexed
	Token          common.Address // indexed
	Seller         common.Address // indexed
	TotalTokens    *big.Int
	StartPrice     *big.Int
	ReservePrice   *big.Int
}

func ToTokenDeployedLog(log *types.Log) (*TokenDeployedLog, error) {
	if len(log.Topics) != 3 || log.Topics[0] != TokenDeployedSig {
		return nil, errMalformedLog
	}
	var l TokenDeployedLog
	if err := TokenFactoryABI.UnpackIntoInterface(&l, "TokenDeployed", log.Data); err != nil {
		return nil, err
	}
	l.TokenAddress = common.BytesToAddress(log.Topics[1].Bytes())
	l.Owner = common.BytesToAddress(log.Topics[2].Bytes())
	return &l, nil
}

func ToAuctionDeployedLog(log *types.Log) (*AuctionDeployedLog, error) {
	if len(log.Topics) != 4 || log.Topics[0] != AuctionDeployedSig {
		return nil, errMalformedLog
	}
	var l AuctionDeployedLog
	if err := AuctionFactoryABI.UnpackIntoInterface(&l, "AuctionDeployed", log.Data); err != nil {
		return nil, err
	}
	l.AuctionAddress = common.BytesToAddress(log.Topics[1].Bytes())
	l.Token = common.BytesToAddress(log.Topics[2].Bytes())
	l.Seller = common.BytesToAddress(log.Topics[3].Bytes())
	return &l, nil
}

// FindLog returns the first receipt log emitted by emitter with the given event id
func FindLog(receipt *types.Receipt, emitter common.Address, id common.Hash) (*types.Log, bool) {
	if receipt == nil {
		return nil, false
	}
	for _, l := range receipt.Logs {
		if l == nil || len(l.Topics) == 0 {
			continue
		}
		if l.Address == emitter && l.Topics[0] == id {
			return l, true
		}
	}
	return nil, false
}

// EventArgs packs the non-indexed arguments of an event, used to build logs
func EventArgs(a abi.ABI, event string, values ...interface{}) ([]byte, error) {
	ev, ok := a.Events[event]
	if !ok {
		return nil, xerrors.Errorf("event %s not found", event)
	}
	return ev.Inputs.NonIndexed().Pack(values...)
}
