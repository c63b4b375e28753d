package chaintest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	baseabi "github.com/x-xyz/auctiond/base/abi"
)

// TokenDeployedLog builds the log a token factory emits on deployToken
func TokenDeployedLog(factory, token, owner common.Address, name, symbol string, supply *big.Int) *types.Log {
	data, err := baseabi.EventArgs(baseabi.TokenFactoryABI, "TokenDeployed", name, symbol, supply)
	if err != nil {
		panic(err)
	}
	return &types.Log{
		Address: factory,
		Topics:  []common.Hash{baseabi.TokenDeployedSig, token.Hash(), owner.Hash()},
		Data:    data,
	}
}

// AuctionDeployedLog builds the log an auction factory emits on deployAuction
func AuctionDeployedLog(factory, auction, token, seller common.Address, total, startPrice, reservePrice *big.Int) *types.Log {
	data, err := baseabi.EventArgs(baseabi.AuctionFactoryABI, "AuctionDeployed", total, startPrice, reservePrice)
	if err != nil {
		panic(err)
	}
	return &types.Log{
		Address: factory,
		Topics:  []common.Hash{baseabi.AuctionDeployedSig, auction.Hash(), token.Hash(), seller.Hash()},
		Data:    data,
	}
}
