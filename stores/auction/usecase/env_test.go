package usecase

import (
	"math/big"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	baseabi "github.com/x-xyz/auctiond/base/abi"
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/chaintest"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

const testChainId = 5

var (
	auctionAddr = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenAddr   = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	sellerAddr  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	watchAddr   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	ether       = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	fixedNow    = time.Unix(1700000600, 0)
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), ether)
}

// legacyAuctionABI lacks every optional getter and names its refund requestRefund
var legacyAuctionABI = func() ethabi.ABI {
	a, err := baseabi.Parse([]byte(`[
{"type":"function","name":"startPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"reservePrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"totalTokens","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"auctionEnded","stateMutability":"view","inputs":[],"outputs":[{"type":"bool"}]},
{"type":"function","name":"seller","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
{"type":"function","name":"token","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
{"type":"function","name":"startTime","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"getCurrentPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"clearingPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"bids","stateMutability":"view","inputs":[{"type":"address","name":"bidder"}],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"bid","stateMutability":"payable","inputs":[],"outputs":[]},
{"type":"function","name":"requestRefund","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`))
	if err != nil {
		panic(err)
	}
	return a
}()

type env struct {
	ctx      bCtx.Ctx
	backend  *chaintest.Backend
	registry contract.Registry
	caller   domain.Address
}

// newEnv wires a registry over an in-memory backend. A nil wallet config means no wallet.
func newEnv(auctionABI *ethabi.ABI, walletCfg *chain.WalletCfg) *env {
	ctx := bCtx.Background()
	backend := chaintest.New(testChainId)
	a := baseabi.DutchAuctionABI
	if auctionABI != nil {
		a = *auctionABI
	}
	backend.Deploy(auctionAddr, a)
	backend.Deploy(tokenAddr, baseabi.ERC20ABI)

	w := chain.NoWallet()
	if walletCfg != nil {
		var err error
		if w, err = chain.NewWallet(ctx, walletCfg); err != nil {
			panic(err)
		}
	}
	caller, _ := w.Address()
	gw := chain.NewGateway(&chain.GatewayCfg{
		Backend:      backend,
		ChainId:      testChainId,
		Wallet:       w,
		ABIs:         map[chain.Kind]ethabi.ABI{chain.KindAuction: a},
		PollInterval: time.Millisecond,
	})
	e := &env{ctx: ctx, backend: backend, registry: contract.NewRegistry(gw), caller: caller}
	e.answerLiveAuction()
	return e
}

func signingWallet() *chain.WalletCfg {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &chain.WalletCfg{PrivateKey: hexutil.Encode(crypto.FromECDSA(key)), ChainId: testChainId}
}

func watchWallet() *chain.WalletCfg {
	return &chain.WalletCfg{Address: watchAddr.Hex()}
}

// answerLiveAuction answers a started auction: 1000 tokens, 400 left, 10 minutes in
func (e *env) answerLiveAuction() {
	b := e.backend
	b.Answer(auctionAddr, "startPrice", eth(2))
	b.Answer(auctionAddr, "reservePrice", eth(1))
	b.Answer(auctionAddr, "totalTokens", eth(1000))
	b.Answer(auctionAddr, "auctionEnded", false)
	b.Answer(auctionAddr, "started", true)
	b.Answer(auctionAddr, "seller", sellerAddr)
	b.Answer(auctionAddr, "token", tokenAddr)
	b.Answer(auctionAddr, "startTime", big.NewInt(fixedNow.Unix()-600))
	b.Answer(auctionAddr, "AUCTION_DURATION", big.NewInt(1200))
	b.Answer(auctionAddr, "getCurrentPrice", new(big.Int).Div(eth(3), big.NewInt(2)))
	b.Answer(auctionAddr, "clearingPrice", big.NewInt(0))
	b.Answer(auctionAddr, "getTimeRemaining", big.NewInt(600))
	b.Answer(auctionAddr, "totalCommitted", eth(900))
	b.Answer(auctionAddr, "bids", eth(3))
	b.Answer(tokenAddr, "symbol", "SALE")
	b.Answer(tokenAddr, "decimals", uint8(18))
	b.AnswerFunc(tokenAddr, "balanceOf", func(args []interface{}) ([]interface{}, error) {
		if args[0].(common.Address) == auctionAddr {
			return []interface{}{eth(400)}, nil
		}
		return []interface{}{eth(2)}, nil
	})
}
