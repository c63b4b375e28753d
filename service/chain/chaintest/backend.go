// Package chaintest provides an in-memory backend answering contract calls by
// ABI-packing canned outputs. It is meant for tests only.
package chaintest

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted is what the backend answers for calls it has no answer for
var ErrReverted = errors.New("execution reverted")

// CallFunc answers a call given the decoded inputs
type CallFunc func(args []interface{}) ([]interface{}, error)

// TxFunc answers a transaction given the decoded inputs, returning the logs the
// receipt carries. A non-nil error makes the receipt fail. It may update the
// backend's answers to reflect the new state.
type TxFunc func(from common.Address, value *big.Int, args []interface{}) ([]*types.Log, error)

// Sent is one recorded transaction
type Sent struct {
	To     common.Address
	Method string
	Args   []interface{}
	Value  *big.Int
	Tx     *types.Transaction
}

type contract struct {
	abi   abi.ABI
	calls map[string]CallFunc
	txs   map[string]TxFunc
}

type Backend struct {
	mu        sync.Mutex
	chainId   *big.Int
	block     uint64
	contracts map[common.Address]*contract
	receipts  map[common.Hash]*types.Receipt
	pending   map[common.Hash]int
	nonces    map[common.Address]uint64
	sent      []Sent
	callCount map[string]int

	// PendingPolls is how many receipt polls return NotFound before a tx is mined
	PendingPolls int
	// SendErr is returned by SendTransaction when set
	SendErr error
}

func New(chainId int64) *Backend {
	return &Backend{
		chainId:   big.NewInt(chainId),
		block:     1,
		contracts: map[common.Address]*contract{},
		receipts:  map[common.Hash]*types.Receipt{},
		pending:   map[common.Hash]int{},
		nonces:    map[common.Address]uint64{},
		callCount: map[string]int{},
	}
}

// SetChainId simulates the wallet switching networks
func (b *Backend) SetChainId(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chainId = big.NewInt(id)
}

// Deploy registers a contract at addr speaking a
func (b *Backend) Deploy(addr common.Address, a abi.ABI) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contracts[addr] = &contract{abi: a, calls: map[string]CallFunc{}, txs: map[string]TxFunc{}}
}

// Answer makes method return the given outputs
func (b *Backend) Answer(addr common.Address, method string, outputs ...interface{}) {
	b.AnswerFunc(addr, method, func([]interface{}) ([]interface{}, error) {
		return outputs, nil
	})
}

// Fail makes method return err
func (b *Backend) Fail(addr common.Address, method string, err error) {
	b.AnswerFunc(addr, method, func([]interface{}) ([]interface{}, error) {
		return nil, err
	})
}

func (b *Backend) AnswerFunc(addr common.Address, method string, fn CallFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contracts[addr].calls[method] = fn
}

// OnTx sets the effect of a transaction calling method
func (b *Backend) OnTx(addr common.Address, method string, fn TxFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contracts[addr].txs[method] = fn
}

// Sent returns every transaction sent so far
func (b *Backend) Sent() []Sent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Sent{}, b.sent...)
}

// Calls returns how many times method was called on addr
func (b *Backend) Calls(addr common.Address, method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.callCount[addr.Hex()+"."+method]
}

// TotalCalls returns the number of read calls served
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.callCount {
		n += c
	}
	return n
}

func (b *Backend) decode(to *common.Address, data []byte) (*contract, *abi.Method, []interface{}, error) {
	if to == nil {
		return nil, nil, nil, errors.New("contract creation not supported")
	}
	c, ok := b.contracts[*to]
	if !ok || len(data) < 4 {
		return nil, nil, nil, ErrReverted
	}
	m, err := c.abi.MethodById(data[:4])
	if err != nil {
		return nil, nil, nil, ErrReverted
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, nil, err
	}
	return c, m, args, nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	c, m, args, err := b.decode(msg.To, msg.Data)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	b.callCount[msg.To.Hex()+"."+m.Name]++
	fn, ok := c.calls[m.Name]
	b.mu.Unlock()
	if !ok {
		return nil, ErrReverted
	}
	outputs, err := fn(args)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(outputs...)
}

func (b *Backend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return b.PendingCodeAt(ctx, contract)
}

func (b *Backend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.contracts[account]; ok {
		return []byte{0x60}, nil
	}
	return nil, nil
}

func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &types.Header{Number: new(big.Int).SetUint64(b.block)}, nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 100000, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if b.SendErr != nil {
		return b.SendErr
	}
	b.mu.Lock()
	c, m, args, err := b.decode(tx.To(), tx.Data())
	if err != nil {
		b.mu.Unlock()
		return err
	}
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	b.nonces[from]++
	b.block++
	b.sent = append(b.sent, Sent{To: *tx.To(), Method: m.Name, Args: args, Value: tx.Value(), Tx: tx})
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(b.block),
	}
	fn, ok := c.txs[m.Name]
	b.mu.Unlock()

	if ok {
		logs, err := fn(from, tx.Value(), args)
		if err != nil {
			receipt.Status = types.ReceiptStatusFailed
		}
		for _, l := range logs {
			l.TxHash = tx.Hash()
		}
		receipt.Logs = logs
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.receipts[tx.Hash()] = receipt
	b.pending[tx.Hash()] = b.PendingPolls
	return nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	if b.pending[txHash] > 0 {
		b.pending[txHash]--
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (b *Backend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (b *Backend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions not supported")
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.chainId), nil
}

func (b *Backend) BlockNumber(ctx context.Context) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.block, nil
}
