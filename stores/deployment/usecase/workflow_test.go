package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/ptr"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/contract/mocks"
)

var (
	tokenFactoryAddr   = domain.Address("0x00000000000000000000000000000000000000f1")
	auctionFactoryAddr = domain.Address("0x00000000000000000000000000000000000000f2")
	newTokenAddr       = domain.Address("0x00000000000000000000000000000000000000b1")
	newAuctionAddr     = domain.Address("0x00000000000000000000000000000000000000a1")
	otherTokenAddr     = domain.Address("0x00000000000000000000000000000000000000b2")
	dupTokenAddr       = domain.Address("0x00000000000000000000000000000000000000b3")
	operatorAddr       = domain.Address("0x00000000000000000000000000000000000000aa")

	ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), ether)
}

func newTx(nonce uint64) *types.Transaction {
	to := common.HexToAddress("0x01")
	return types.NewTransaction(nonce, to, big.NewInt(0), 21000, big.NewInt(1), nil)
}

var okReceipt = &types.Receipt{Status: types.ReceiptStatusSuccessful}

var testParams = deployment.Params{
	Name:         "Gold",
	Ticker:       "GLD",
	Quantity:     "1000",
	StartPrice:   "2",
	ReservePrice: "0.5",
}

// fixture holds the chain mocks shared by the suites
type fixture struct {
	registry       *mocks.Registry
	tokenFactory   *mocks.TokenFactory
	auctionFactory *mocks.AuctionFactory
	token          *mocks.Token
}

func newFixture() fixture {
	return fixture{
		registry:       new(mocks.Registry),
		tokenFactory:   new(mocks.TokenFactory),
		auctionFactory: new(mocks.AuctionFactory),
		token:          new(mocks.Token),
	}
}

func (f fixture) expectEmptyFactory() {
	f.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeRead).Return(f.tokenFactory, nil)
	f.tokenFactory.On("TokenCount", mock.Anything).Return(int64(0), nil)
}

func (f fixture) expectTokenDeploy() {
	tx := newTx(1)
	f.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeWrite).Return(f.tokenFactory, nil)
	f.tokenFactory.On("DeployToken", mock.Anything, "Gold", "GLD", eth(1000)).Return(tx, nil).Once()
	f.registry.On("WaitMined", mock.Anything, tx).Return(okReceipt, nil)
	f.tokenFactory.On("DeployedToken", okReceipt).Return(newTokenAddr, nil)
}

func (f fixture) expectAuctionDeploy() {
	tx := newTx(2)
	f.registry.On("AuctionFactory", mock.Anything, auctionFactoryAddr, chain.ModeWrite).Return(f.auctionFactory, nil)
	f.auctionFactory.On("DeployAuction", mock.Anything, newTokenAddr, eth(1000), eth(2), new(big.Int).Div(ether, big.NewInt(2))).Return(tx, nil).Once()
	f.registry.On("WaitMined", mock.Anything, tx).Return(okReceipt, nil)
	f.auctionFactory.On("DeployedAuction", okReceipt).Return(newAuctionAddr, nil)
}

func (f fixture) expectApprove() {
	tx := newTx(3)
	f.registry.On("Token", mock.Anything, newTokenAddr, chain.ModeWrite).Return(f.token, nil)
	f.token.On("Approve", mock.Anything, newAuctionAddr, eth(1000)).Return(tx, nil).Once()
	f.registry.On("WaitMined", mock.Anything, tx).Return(okReceipt, nil)
}

type WorkflowSuite struct {
	suite.Suite
	fixture

	ctx       bCtx.Ctx
	completed []domain.Address
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.fixture = newFixture()
	s.completed = nil
}

func (s *WorkflowSuite) newWorkflow(p deployment.Params) *Workflow {
	wf, err := NewWorkflow(WorkflowCfg{
		Id:             "run-1",
		Params:         p,
		Registry:       s.registry,
		TokenFactory:   tokenFactoryAddr,
		AuctionFactory: auctionFactoryAddr,
		OnComplete: func(ctx bCtx.Ctx, auction domain.Address) error {
			s.completed = append(s.completed, auction)
			return nil
		},
	})
	s.Require().NoError(err)
	return wf
}

func (s *WorkflowSuite) TestRejectsMalformedInput() {
	for _, p := range []deployment.Params{
		{Name: "", Ticker: "GLD", Quantity: "1", StartPrice: "2", ReservePrice: "1"},
		{Name: "Gold", Ticker: "GLD", Quantity: "abc", StartPrice: "2", ReservePrice: "1"},
		{Name: "Gold", Ticker: "GLD", Quantity: "0", StartPrice: "2", ReservePrice: "1"},
		{Name: "Gold", Ticker: "GLD", Quantity: "1", StartPrice: "-2", ReservePrice: "1"},
	} {
		_, err := NewWorkflow(WorkflowCfg{Params: p, Registry: s.registry})
		s.Error(err, p)
	}
}

func (s *WorkflowSuite) TestNoExistingTokens() {
	s.expectEmptyFactory()
	wf := s.newWorkflow(testParams)

	s.Require().NoError(wf.CheckTokenExistence(s.ctx))

	st := wf.State()
	s.Require().NotNil(st.NeedsTokenDeploy)
	s.True(*st.NeedsTokenDeploy)
	s.True(st.TokenAddress.IsEmpty())
	s.Equal(deployment.PhaseIdle, wf.Phase())
}

func (s *WorkflowSuite) TestFirstMatchWins() {
	other, match, dup := new(mocks.Token), new(mocks.Token), new(mocks.Token)
	s.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeRead).Return(s.tokenFactory, nil)
	s.tokenFactory.On("TokenCount", mock.Anything).Return(int64(3), nil)
	s.tokenFactory.On("Tokens", mock.Anything, int64(0)).Return(otherTokenAddr, nil)
	s.tokenFactory.On("Tokens", mock.Anything, int64(1)).Return(newTokenAddr, nil)
	s.registry.On("Token", mock.Anything, otherTokenAddr, chain.ModeRead).Return(other, nil)
	s.registry.On("Token", mock.Anything, newTokenAddr, chain.ModeRead).Return(match, nil)
	s.registry.On("Token", mock.Anything, dupTokenAddr, chain.ModeRead).Return(dup, nil)
	other.On("Name", mock.Anything).Return("Gold", nil)
	other.On("Symbol", mock.Anything).Return("GOLD", nil)
	match.On("Name", mock.Anything).Return("Gold", nil)
	match.On("Symbol", mock.Anything).Return("GLD", nil)

	wf := s.newWorkflow(testParams)
	s.Require().NoError(wf.CheckTokenExistence(s.ctx))

	st := wf.State()
	s.Equal(newTokenAddr, st.TokenAddress)
	s.False(*st.NeedsTokenDeploy)
	s.Equal(deployment.PhaseTokenFound, wf.Phase())
	s.tokenFactory.AssertNotCalled(s.T(), "Tokens", mock.Anything, int64(2))
	dup.AssertNotCalled(s.T(), "Name", mock.Anything)
}

func (s *WorkflowSuite) TestScanFailureIsFatal() {
	s.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeRead).Return(s.tokenFactory, nil)
	s.tokenFactory.On("TokenCount", mock.Anything).Return(int64(0), errors.New("dial tcp: refused"))

	wf := s.newWorkflow(testParams)
	s.Error(wf.CheckTokenExistence(s.ctx))
	s.Nil(wf.State().NeedsTokenDeploy)
	s.Equal(deployment.PhaseIdle, wf.Phase())
}

func (s *WorkflowSuite) TestInvertedPricesIssueNoCall() {
	p := testParams
	p.StartPrice = "1"
	p.ReservePrice = "2"
	wf := s.newWorkflow(p)

	s.ErrorIs(wf.DeployToken(s.ctx), domain.ErrInvalidPriceOrdering)
	s.ErrorIs(wf.DeployAuction(s.ctx), domain.ErrInvalidPriceOrdering)

	s.registry.AssertNotCalled(s.T(), "TokenFactory", mock.Anything, mock.Anything, mock.Anything)
	s.registry.AssertNotCalled(s.T(), "AuctionFactory", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(deployment.PhaseIdle, wf.Phase())
}

func (s *WorkflowSuite) TestEqualPricesRejected() {
	p := testParams
	p.StartPrice = "1.0"
	p.ReservePrice = "1"
	wf := s.newWorkflow(p)
	s.ErrorIs(wf.DeployAuction(s.ctx), domain.ErrInvalidPriceOrdering)
}

func (s *WorkflowSuite) TestRunToApprovalAndComplete() {
	s.expectEmptyFactory()
	s.expectTokenDeploy()
	s.expectAuctionDeploy()
	wf := s.newWorkflow(testParams)

	s.Require().NoError(wf.Run(s.ctx))
	st := wf.State()
	s.Equal(deployment.PhaseAwaitingApproval, wf.Phase())
	s.Equal(newTokenAddr, st.TokenAddress)
	s.Equal(newAuctionAddr, st.AuctionAddress)
	s.True(st.NeedsApproval)
	s.Empty(s.completed)

	s.expectApprove()
	s.Require().NoError(wf.Approve(s.ctx))
	s.Equal(deployment.PhaseComplete, wf.Phase())
	s.False(wf.State().NeedsApproval)
	s.Equal([]domain.Address{newAuctionAddr}, s.completed)

	// a completed run is inert
	s.NoError(wf.Run(s.ctx))
	s.NoError(wf.Approve(s.ctx))
	s.Len(s.completed, 1)
	s.token.AssertNumberOfCalls(s.T(), "Approve", 1)
}

func (s *WorkflowSuite) TestAutoApprove() {
	s.expectEmptyFactory()
	s.expectTokenDeploy()
	s.expectAuctionDeploy()
	s.expectApprove()
	p := testParams
	p.AutoApprove = true
	wf := s.newWorkflow(p)

	s.Require().NoError(wf.Run(s.ctx))
	s.Equal(deployment.PhaseComplete, wf.Phase())
	s.Equal([]domain.Address{newAuctionAddr}, s.completed)
}

func (s *WorkflowSuite) TestResumeDoesNotRedeployToken() {
	s.expectEmptyFactory()
	s.expectTokenDeploy()
	s.registry.On("AuctionFactory", mock.Anything, auctionFactoryAddr, chain.ModeWrite).Return(s.auctionFactory, nil)
	s.auctionFactory.On("DeployAuction", mock.Anything, newTokenAddr, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("execution reverted: factory paused")).Once()
	wf := s.newWorkflow(testParams)

	err := wf.Run(s.ctx)
	s.ErrorIs(err, domain.ErrCallReverted)
	s.Equal(deployment.PhaseIdle, wf.Phase())
	s.Equal(newTokenAddr, wf.State().TokenAddress)
	s.True(wf.State().AuctionAddress.IsEmpty())

	s.expectAuctionDeploy()
	s.Require().NoError(wf.Run(s.ctx))
	s.Equal(deployment.PhaseAwaitingApproval, wf.Phase())
	s.Equal(newAuctionAddr, wf.State().AuctionAddress)
	s.tokenFactory.AssertNumberOfCalls(s.T(), "DeployToken", 1)
	s.tokenFactory.AssertNumberOfCalls(s.T(), "TokenCount", 1)
}

func (s *WorkflowSuite) TestResumeWaitsOnPendingTokenTx() {
	s.expectEmptyFactory()
	tx := newTx(1)
	hash := domain.TxHash(tx.Hash().Hex())
	s.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeWrite).Return(s.tokenFactory, nil)
	s.tokenFactory.On("DeployToken", mock.Anything, "Gold", "GLD", eth(1000)).Return(tx, nil).Once()
	s.registry.On("WaitMined", mock.Anything, tx).Return(nil, context.DeadlineExceeded).Once()
	wf := s.newWorkflow(testParams)

	s.ErrorIs(wf.Run(s.ctx), context.DeadlineExceeded)
	s.Equal(deployment.PhaseIdle, wf.Phase())
	s.Equal(hash, wf.State().PendingTx)
	s.True(wf.State().TokenAddress.IsEmpty())

	s.registry.On("WaitReceipt", mock.Anything, hash).Return(okReceipt, nil).Once()
	s.tokenFactory.On("DeployedToken", okReceipt).Return(newTokenAddr, nil)
	s.expectAuctionDeploy()
	s.Require().NoError(wf.Run(s.ctx))
	s.Equal(deployment.PhaseAwaitingApproval, wf.Phase())
	s.Equal(newTokenAddr, wf.State().TokenAddress)
	s.Equal(newAuctionAddr, wf.State().AuctionAddress)
	s.Empty(wf.State().PendingTx)
	s.tokenFactory.AssertNumberOfCalls(s.T(), "DeployToken", 1)
	s.auctionFactory.AssertNumberOfCalls(s.T(), "DeployAuction", 1)
}

func (s *WorkflowSuite) TestRevertedPendingAuctionTxIsResent() {
	wf := s.newWorkflow(testParams)
	wf.update(func(st *deployment.State) {
		st.TokenAddress = newTokenAddr
		st.NeedsTokenDeploy = ptr.Bool(false)
	})
	first := newTx(2)
	firstHash := domain.TxHash(first.Hash().Hex())
	s.registry.On("AuctionFactory", mock.Anything, auctionFactoryAddr, chain.ModeWrite).Return(s.auctionFactory, nil)
	s.auctionFactory.On("DeployAuction", mock.Anything, newTokenAddr, mock.Anything, mock.Anything, mock.Anything).Return(first, nil).Once()
	s.registry.On("WaitMined", mock.Anything, first).Return(nil, context.DeadlineExceeded).Once()

	s.ErrorIs(wf.DeployAuction(s.ctx), context.DeadlineExceeded)
	s.Equal(firstHash, wf.State().PendingTx)

	reverted := &types.Receipt{Status: types.ReceiptStatusFailed}
	s.registry.On("WaitReceipt", mock.Anything, firstHash).Return(reverted, domain.ErrCallReverted).Once()
	s.ErrorIs(wf.DeployAuction(s.ctx), domain.ErrCallReverted)
	s.Empty(wf.State().PendingTx)
	s.auctionFactory.AssertNumberOfCalls(s.T(), "DeployAuction", 1)

	retry := newTx(4)
	s.auctionFactory.On("DeployAuction", mock.Anything, newTokenAddr, mock.Anything, mock.Anything, mock.Anything).Return(retry, nil).Once()
	s.registry.On("WaitMined", mock.Anything, retry).Return(okReceipt, nil).Once()
	s.auctionFactory.On("DeployedAuction", okReceipt).Return(newAuctionAddr, nil)
	s.Require().NoError(wf.DeployAuction(s.ctx))
	s.Equal(newAuctionAddr, wf.State().AuctionAddress)
	s.auctionFactory.AssertNumberOfCalls(s.T(), "DeployAuction", 2)
}

func (s *WorkflowSuite) TestExistingTokenSkipsDeploy() {
	match := new(mocks.Token)
	s.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeRead).Return(s.tokenFactory, nil)
	s.tokenFactory.On("TokenCount", mock.Anything).Return(int64(1), nil)
	s.tokenFactory.On("Tokens", mock.Anything, int64(0)).Return(newTokenAddr, nil)
	s.registry.On("Token", mock.Anything, newTokenAddr, chain.ModeRead).Return(match, nil)
	match.On("Name", mock.Anything).Return("Gold", nil)
	match.On("Symbol", mock.Anything).Return("GLD", nil)
	s.expectAuctionDeploy()
	wf := s.newWorkflow(testParams)

	s.Require().NoError(wf.Run(s.ctx))
	s.Equal(deployment.PhaseAwaitingApproval, wf.Phase())
	s.tokenFactory.AssertNotCalled(s.T(), "DeployToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *WorkflowSuite) TestMissingEventKeepsState() {
	s.expectEmptyFactory()
	tx := newTx(1)
	s.registry.On("TokenFactory", mock.Anything, tokenFactoryAddr, chain.ModeWrite).Return(s.tokenFactory, nil)
	s.tokenFactory.On("DeployToken", mock.Anything, "Gold", "GLD", eth(1000)).Return(tx, nil)
	s.registry.On("WaitMined", mock.Anything, tx).Return(okReceipt, nil)
	s.tokenFactory.On("DeployedToken", okReceipt).Return(domain.Address(""), domain.ErrAddressNotFound)
	wf := s.newWorkflow(testParams)

	s.ErrorIs(wf.Run(s.ctx), domain.ErrAddressNotFound)
	s.Equal(deployment.PhaseIdle, wf.Phase())
	s.True(*wf.State().NeedsTokenDeploy)
	s.True(wf.State().TokenAddress.IsEmpty())
}

func (s *WorkflowSuite) TestUserRejectedApproval() {
	wf := s.newWorkflow(testParams)
	wf.update(func(st *deployment.State) {
		st.TokenAddress = newTokenAddr
		st.AuctionAddress = newAuctionAddr
		st.NeedsApproval = true
	})
	s.registry.On("Token", mock.Anything, newTokenAddr, chain.ModeWrite).Return(s.token, nil)
	s.token.On("Approve", mock.Anything, newAuctionAddr, eth(1000)).Return(nil, errors.New("MetaMask Tx Signature: User denied transaction signature."))

	s.ErrorIs(wf.Approve(s.ctx), domain.ErrUserRejected)
	s.Equal(deployment.PhaseIdle, wf.Phase())
	s.True(wf.State().NeedsApproval)
	s.Empty(s.completed)
}

func (s *WorkflowSuite) TestApproveWithoutAuction() {
	wf := s.newWorkflow(testParams)
	s.ErrorIs(wf.Approve(s.ctx), domain.ErrNoAuction)
}

func (s *WorkflowSuite) TestEventsReachSink() {
	s.expectEmptyFactory()
	sink := newHistorySink(0)
	wf, err := NewWorkflow(WorkflowCfg{
		Id:             "run-2",
		Params:         testParams,
		Registry:       s.registry,
		TokenFactory:   tokenFactoryAddr,
		AuctionFactory: auctionFactoryAddr,
		Sink:           sink,
	})
	s.Require().NoError(err)
	s.Require().NoError(wf.CheckTokenExistence(s.ctx))

	events := sink.Events()
	s.Require().Len(events, 2)
	s.Equal(deployment.PhaseCheckingToken, events[0].Phase)
	s.Equal(deployment.PhaseIdle, events[1].Phase)
	s.Equal("run-2", events[1].RunId)
}
