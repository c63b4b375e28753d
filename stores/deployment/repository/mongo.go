package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/database/mongoclient"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/service/query"
)

const defaultLimit = 50

type mongoRepo struct {
	q query.Mongo
}

func NewMongoRepo(q query.Mongo) deployment.Repo {
	return &mongoRepo{q}
}

// EnsureIndexes creates the indexes FindOne and FindAll rely on
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	if err := q.EnsureIndex(c, domain.TableDeployments, true, "chainId", "auction"); err != nil {
		return err
	}
	return q.EnsureIndex(c, domain.TableDeployments, false, "chainId", "seller", "-createdAt")
}

func (im *mongoRepo) Insert(c ctx.Ctx, r *deployment.Record) error {
	rec := *r
	rec.Auction = rec.Auction.ToLower()
	rec.Token = rec.Token.ToLower()
	rec.Seller = rec.Seller.ToLower()
	if err := im.q.Insert(c, domain.TableDeployments, &rec); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *mongoRepo) FindOne(c ctx.Ctx, chainId domain.ChainId, auction domain.Address) (*deployment.Record, error) {
	qry := bson.M{
		"chainId": chainId,
		"auction": auction.ToLower(),
	}
	res := &deployment.Record{}
	if err := im.q.FindOne(c, domain.TableDeployments, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *mongoRepo) FindAll(c ctx.Ctx, optFns ...deployment.FindAllOptionsFunc) ([]*deployment.Record, error) {
	opts, err := deployment.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("deployment.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	offset, limit := 0, defaultLimit
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*deployment.Record{}
	if err := im.q.Search(c, domain.TableDeployments, offset, limit, "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
