package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/service/query"
	"github.com/x-xyz/auctiond/service/query/mocks"
)

var (
	mockCtx     = ctx.Background()
	mockChainId = domain.ChainId(5)
	mockAuction = domain.Address("0x00000000000000000000000000000000000000AB")
	mockSeller  = domain.Address("0x00000000000000000000000000000000000000CD")
)

type repoSuite struct {
	suite.Suite

	q  *mocks.Mongo
	im deployment.Repo
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(repoSuite))
}

func (s *repoSuite) SetupTest() {
	s.q = &mocks.Mongo{}
	s.im = NewMongoRepo(s.q)
}

func (s *repoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *repoSuite) TestInsertLowercasesAddresses() {
	rec := &deployment.Record{
		Auction:   mockAuction,
		Token:     "0x00000000000000000000000000000000000000EF",
		ChainId:   mockChainId,
		Seller:    mockSeller,
		Name:      "Gold",
		CreatedAt: time.Unix(100, 0).UTC(),
	}
	s.q.On("Insert", mockCtx, domain.TableDeployments, mock.MatchedBy(func(r *deployment.Record) bool {
		return r.Auction == mockAuction.ToLower() &&
			r.Token == "0x00000000000000000000000000000000000000ef" &&
			r.Seller == mockSeller.ToLower()
	})).Return(nil).Once()

	s.Require().NoError(s.im.Insert(mockCtx, rec))
	s.Equal(mockAuction, rec.Auction, "caller's record is untouched")
}

func (s *repoSuite) TestInsertFailure() {
	s.q.On("Insert", mockCtx, domain.TableDeployments, mock.Anything).Return(query.ErrDuplicateKey).Once()
	s.Equal(query.ErrDuplicateKey, s.im.Insert(mockCtx, &deployment.Record{}))
}

func (s *repoSuite) TestFindOne() {
	qry := bson.M{"chainId": mockChainId, "auction": mockAuction.ToLower()}
	s.q.On("FindOne", mockCtx, domain.TableDeployments, qry, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		r := args.Get(3).(*deployment.Record)
		r.Auction = mockAuction.ToLower()
		r.Name = "Gold"
	}).Once()

	res, err := s.im.FindOne(mockCtx, mockChainId, mockAuction)
	s.Require().NoError(err)
	s.Equal("Gold", res.Name)
	s.Equal(mockAuction.ToLower(), res.Auction)
}

func (s *repoSuite) TestFindOneNotFound() {
	s.q.On("FindOne", mockCtx, domain.TableDeployments, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := s.im.FindOne(mockCtx, mockChainId, mockAuction)
	s.Equal(domain.ErrNotFound, err)

	s.q.On("FindOne", mockCtx, domain.TableDeployments, mock.Anything, mock.Anything).Return(fmt.Errorf("boom")).Once()
	_, err = s.im.FindOne(mockCtx, mockChainId, mockAuction)
	s.EqualError(err, "boom")
}

func (s *repoSuite) TestFindAll() {
	qry := bson.M{"chainId": mockChainId, "seller": mockSeller.ToLower()}
	s.q.On("Search", mockCtx, domain.TableDeployments, 10, 5, "-createdAt", qry, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		res := args.Get(6).(*[]*deployment.Record)
		*res = append(*res, &deployment.Record{Name: "Gold"}, &deployment.Record{Name: "Silver"})
	}).Once()

	res, err := s.im.FindAll(mockCtx,
		deployment.WithChainId(mockChainId),
		deployment.WithSeller(mockSeller),
		deployment.WithPagination(10, 5),
	)
	s.Require().NoError(err)
	s.Len(res, 2)
	s.Equal("Silver", res[1].Name)
}

func (s *repoSuite) TestFindAllDefaults() {
	s.q.On("Search", mockCtx, domain.TableDeployments, 0, defaultLimit, "-createdAt", bson.M{}, mock.Anything).Return(nil).Once()

	res, err := s.im.FindAll(mockCtx)
	s.Require().NoError(err)
	s.Empty(res)
}

func (s *repoSuite) TestEnsureIndexes() {
	s.q.On("EnsureIndex", mockCtx, domain.TableDeployments, true, []string{"chainId", "auction"}).Return(nil).Once()
	s.q.On("EnsureIndex", mockCtx, domain.TableDeployments, false, []string{"chainId", "seller", "-createdAt"}).Return(nil).Once()
	s.NoError(EnsureIndexes(mockCtx, s.q))
}
