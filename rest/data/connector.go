package data

import (
	"context"

	"github.com/evergreen-ci/teapot/db"
	"github.com/evergreen-ci/teapot/model"
)

// Connector abstracts the link between the REST layer and teapot storage.
// Failures to reach the store are returned as errors; everything the store
// answered, including write errors it reported, comes back as a db.Result.
type Connector interface {
	// CreateTeapot stores a new teapot. On success the write status
	// carries the generated key.
	CreateTeapot(context.Context, model.Teapot) (db.Result[db.WriteStatus], error)
	// FindTeapotById returns the Empty result when no teapot has the id.
	FindTeapotById(context.Context, string) (db.Result[model.Teapot], error)
	// FindAllTeapots returns one result per stored document.
	FindAllTeapots(context.Context) ([]db.Result[model.Teapot], error)
	UpdateTeapot(context.Context, string, model.TeapotPatch) (db.Result[db.WriteStatus], error)
	DeleteTeapot(context.Context, string) (db.Result[db.WriteStatus], error)
}
