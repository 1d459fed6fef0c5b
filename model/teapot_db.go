package model

import (
	"context"

	"github.com/evergreen-ci/teapot/db"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertTeapot stores a new teapot. Any id on t is ignored so that the
// database generates one.
func InsertTeapot(ctx context.Context, coll *mongo.Collection, t Teapot) (db.Result[db.WriteStatus], error) {
	t.Id = ""
	return db.Insert(ctx, coll, t)
}

// FindOneTeapotId returns the teapot with the given id, or the Empty result
// if there is none. Stored documents that do not decode as a teapot are
// returned as the Unexpected result.
func FindOneTeapotId(ctx context.Context, coll *mongo.Collection, id string) (db.Result[Teapot], error) {
	res, err := db.FindOneID(ctx, coll, id)
	if err != nil {
		return db.Result[Teapot]{}, errors.Wrapf(err, "finding teapot '%s'", id)
	}

	switch res.Kind {
	case db.Expected:
		return decodeTeapot(coll, res.Value), nil
	case db.Unexpected:
		return db.UnexpectedResult[Teapot](res.Raw), nil
	default:
		return db.EmptyResult[Teapot](), nil
	}
}

// FindAllTeapots scans the whole collection, returning one result per
// stored document in the order the database produced them.
func FindAllTeapots(ctx context.Context, coll *mongo.Collection) ([]db.Result[Teapot], error) {
	docs, err := db.FindAll(ctx, coll)
	if err != nil {
		return nil, errors.Wrap(err, "finding all teapots")
	}

	out := make([]db.Result[Teapot], 0, len(docs))
	for _, doc := range docs {
		if len(doc) == 0 {
			out = append(out, db.EmptyResult[Teapot]())
			continue
		}
		out = append(out, decodeTeapot(coll, doc))
	}

	return out, nil
}

// UpdateTeapot applies the patch to the teapot with the given id.
func UpdateTeapot(ctx context.Context, coll *mongo.Collection, id string, patch TeapotPatch) (db.Result[db.WriteStatus], error) {
	res, err := db.UpdateID(ctx, coll, id, patch.SetFields())
	return res, errors.Wrapf(err, "updating teapot '%s'", id)
}

// RemoveTeapot deletes the teapot with the given id.
func RemoveTeapot(ctx context.Context, coll *mongo.Collection, id string) (db.Result[db.WriteStatus], error) {
	res, err := db.DeleteID(ctx, coll, id)
	return res, errors.Wrapf(err, "removing teapot '%s'", id)
}

func decodeTeapot(coll *mongo.Collection, raw bson.Raw) db.Result[Teapot] {
	t, err := TeapotFromRaw(raw)
	if err != nil {
		grip.Warning(message.WrapError(err, message.Fields{
			"message":    "stored document is not a teapot",
			"collection": coll.Name(),
		}))
		return db.UnexpectedResult[Teapot](db.RenderRaw(raw))
	}
	return db.ExpectedResult(*t)
}
