package abi

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/xerrors"
)

var (
	DutchAuctionABI   = mustParse("dutch auction", dutchAuctionABIJson)
	ERC20ABI          = mustParse("erc20", erc20ABIJson)
	TokenFactoryABI   = mustParse("token factory", tokenFactoryABIJson)
	AuctionFactoryABI = mustParse("auction factory", auctionFactoryABIJson)
)

func mustParse(name, raw string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("Failed to parse " + name + " abi")
	}
	return _abi
}

// Parse accepts either a bare ABI array or a build artifact carrying an "abi" field
func Parse(raw []byte) (abi.ABI, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(raw, &artifact); err != nil {
			return abi.ABI{}, xerrors.Errorf("decode artifact: %w", err)
		}
		if len(artifact.ABI) == 0 {
			return abi.ABI{}, xerrors.New("artifact has no abi field")
		}
		trimmed = string(artifact.ABI)
	}
	return abi.JSON(strings.NewReader(trimmed))
}

// LoadFile reads an ABI or artifact file from disk
func LoadFile(path string) (abi.ABI, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return abi.ABI{}, err
	}
	return Parse(raw)
}

// HasMethod reports whether the ABI exposes the method
func HasMethod(a abi.ABI, method string) bool {
	_, ok := a.Methods[method]
	return ok
}
