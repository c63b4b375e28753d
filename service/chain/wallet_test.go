package chain

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

func TestNoWallet(t *testing.T) {
	req := require.New(t)
	w, err := NewWallet(bCtx.Background(), &WalletCfg{})
	req.NoError(err)
	_, ok := w.Address()
	req.False(ok)
	req.False(w.CanSign())
	_, err = w.signer(bCtx.Background())
	req.ErrorIs(err, domain.ErrNoWallet)
}

func TestWatchOnlyWallet(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	w, err := NewWallet(ctx, &WalletCfg{Address: "0x939ae6A4C8dfDBB1f7085189574F0A938013952A"})
	req.NoError(err)
	addr, ok := w.Address()
	req.True(ok)
	req.Equal(domain.Address("0x939ae6a4c8dfdbb1f7085189574f0a938013952a"), addr)
	req.False(w.CanSign())

	_, err = NewWallet(ctx, &WalletCfg{Address: "0x123"})
	req.ErrorIs(err, domain.ErrInvalidAddress)
}

func TestKeystoreWallet(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	key, err := crypto.GenerateKey()
	req.NoError(err)

	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.ImportECDSA(key, "secret")
	req.NoError(err)
	raw, err := ioutil.ReadFile(acc.URL.Path)
	req.NoError(err)
	path := filepath.Join(t.TempDir(), "key.json")
	req.NoError(ioutil.WriteFile(path, raw, 0600))

	w, err := NewWallet(ctx, &WalletCfg{Keystore: path, Passphrase: "secret", ChainId: 5})
	req.NoError(err)
	addr, ok := w.Address()
	req.True(ok)
	req.Equal(domain.ToAddress(crypto.PubkeyToAddress(key.PublicKey)), addr)
	req.True(w.CanSign())

	_, err = NewWallet(ctx, &WalletCfg{Keystore: path, Passphrase: "wrong"})
	req.Error(err)
}
