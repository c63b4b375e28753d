package chain

import (
	"crypto/ecdsa"
	"io/ioutil"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/validator"
	"github.com/x-xyz/auctiond/domain"
)

type WalletCfg struct {
	// Address alone configures a watch-only wallet
	Address    string
	Keystore   string
	Passphrase string
	PrivateKey string
	ChainId    domain.ChainId
}

// Wallet is the connected identity. It may be absent, watch-only, or able to sign.
type Wallet struct {
	address   domain.Address
	connected bool
	opts      *bind.TransactOpts
}

// NoWallet is the wallet of a session without any configured identity
func NoWallet() *Wallet {
	return &Wallet{}
}

// NewWallet resolves the configured identity. Keystore wins over a raw private key,
// which wins over a watch-only address.
func NewWallet(ctx bCtx.Ctx, cfg *WalletCfg) (*Wallet, error) {
	var (
		key *ecdsa.PrivateKey
		err error
	)
	switch {
	case cfg.Keystore != "":
		key, err = loadKeystore(cfg.Keystore, cfg.Passphrase)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "keystore": cfg.Keystore}).Error("loadKeystore failed")
			return nil, err
		}
	case cfg.PrivateKey != "":
		key, err = crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			ctx.WithField("err", err).Error("crypto.HexToECDSA failed")
			return nil, xerrors.Errorf("invalid private key: %w", err)
		}
	case cfg.Address != "":
		if !validator.IsValidAddress(cfg.Address) {
			ctx.WithField("address", cfg.Address).Error("invalid wallet address")
			return nil, domain.ErrInvalidAddress
		}
		return &Wallet{address: domain.Address(cfg.Address).ToLower(), connected: true}, nil
	default:
		return NoWallet(), nil
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(int64(cfg.ChainId)))
	if err != nil {
		ctx.WithField("err", err).Error("bind.NewKeyedTransactorWithChainID failed")
		return nil, err
	}
	w := &Wallet{
		address:   domain.ToAddress(opts.From),
		connected: true,
		opts:      opts,
	}
	if cfg.Address != "" && !w.address.Equals(domain.Address(cfg.Address)) {
		ctx.WithFields(log.Fields{"configured": cfg.Address, "derived": w.address}).Warn("wallet.address does not match the signing key, using the key")
	}
	return w, nil
}

func loadKeystore(path, passphrase string) (*ecdsa.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := keystore.DecryptKey(raw, passphrase)
	if err != nil {
		return nil, err
	}
	return key.PrivateKey, nil
}

// Address returns the connected address, false when no wallet is configured
func (w *Wallet) Address() (domain.Address, bool) {
	if w == nil || !w.connected {
		return "", false
	}
	return w.address, true
}

func (w *Wallet) CanSign() bool {
	return w != nil && w.opts != nil
}

// signer returns per-call transact options
func (w *Wallet) signer(ctx bCtx.Ctx) (*bind.TransactOpts, error) {
	if w == nil || !w.connected {
		return nil, domain.ErrNoWallet
	}
	if w.opts == nil {
		return nil, domain.ErrSignerUnavailable
	}
	opts := *w.opts
	opts.Context = ctx
	opts.Value = nil
	return &opts, nil
}
