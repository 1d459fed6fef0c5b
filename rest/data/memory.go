package data

import (
	"context"
	"sync"

	"github.com/evergreen-ci/teapot/db"
	"github.com/evergreen-ci/teapot/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryConnector is a Connector that keeps teapots in process memory. It
// backs the --memory mode of the web service and the route tests. The
// exported fields inject the failure modes a real database can produce.
type MemoryConnector struct {
	// Malformed maps ids to the rendering of stored documents that are
	// not teapots. They are listed after the well-formed teapots.
	Malformed map[string]string
	// NoResponse makes every operation return the Empty result.
	NoResponse bool
	// WriteError makes every write report a single error with this
	// message instead of touching the store.
	WriteError string
	// StoredError is returned from every operation when set.
	StoredError error

	mu      sync.RWMutex
	teapots map[string]model.Teapot
	order   []string
}

// NewMemoryConnector returns an empty MemoryConnector.
func NewMemoryConnector() *MemoryConnector {
	return &MemoryConnector{
		Malformed: map[string]string{},
		teapots:   map[string]model.Teapot{},
	}
}

func (mc *MemoryConnector) CreateTeapot(_ context.Context, t model.Teapot) (db.Result[db.WriteStatus], error) {
	if res, done := mc.writeFault(); done {
		return res, mc.StoredError
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.init()
	t.Id = uuid.New().String()
	mc.teapots[t.Id] = t
	mc.order = append(mc.order, t.Id)

	return db.ExpectedResult(db.WriteStatus{Inserted: 1, GeneratedKeys: []string{t.Id}}), nil
}

func (mc *MemoryConnector) FindTeapotById(_ context.Context, id string) (db.Result[model.Teapot], error) {
	if mc.StoredError != nil {
		return db.Result[model.Teapot]{}, errors.Wrapf(mc.StoredError, "finding teapot '%s'", id)
	}
	if mc.NoResponse {
		return db.EmptyResult[model.Teapot](), nil
	}

	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if raw, ok := mc.Malformed[id]; ok {
		return db.UnexpectedResult[model.Teapot](raw), nil
	}
	t, ok := mc.teapots[id]
	if !ok {
		return db.EmptyResult[model.Teapot](), nil
	}

	return db.ExpectedResult(t), nil
}

func (mc *MemoryConnector) FindAllTeapots(_ context.Context) ([]db.Result[model.Teapot], error) {
	if mc.StoredError != nil {
		return nil, errors.Wrap(mc.StoredError, "finding all teapots")
	}

	mc.mu.RLock()
	defer mc.mu.RUnlock()

	out := make([]db.Result[model.Teapot], 0, len(mc.order)+len(mc.Malformed))
	for _, id := range mc.order {
		out = append(out, db.ExpectedResult(mc.teapots[id]))
	}
	for _, raw := range mc.Malformed {
		out = append(out, db.UnexpectedResult[model.Teapot](raw))
	}
	if mc.NoResponse {
		out = append(out, db.EmptyResult[model.Teapot]())
	}

	return out, nil
}

func (mc *MemoryConnector) UpdateTeapot(_ context.Context, id string, patch model.TeapotPatch) (db.Result[db.WriteStatus], error) {
	if res, done := mc.writeFault(); done {
		return res, mc.StoredError
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	t, ok := mc.teapots[id]
	if !ok {
		return db.ExpectedResult(db.WriteStatus{Skipped: 1}), nil
	}
	updated := patch.Apply(t)
	if updated == t {
		return db.ExpectedResult(db.WriteStatus{Unchanged: 1}), nil
	}
	mc.teapots[id] = updated

	return db.ExpectedResult(db.WriteStatus{Replaced: 1}), nil
}

func (mc *MemoryConnector) DeleteTeapot(_ context.Context, id string) (db.Result[db.WriteStatus], error) {
	if res, done := mc.writeFault(); done {
		return res, mc.StoredError
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, ok := mc.teapots[id]; !ok {
		return db.ExpectedResult(db.WriteStatus{Skipped: 1}), nil
	}
	delete(mc.teapots, id)
	for i, existing := range mc.order {
		if existing == id {
			mc.order = append(mc.order[:i], mc.order[i+1:]...)
			break
		}
	}

	return db.ExpectedResult(db.WriteStatus{Deleted: 1}), nil
}

// writeFault reports the injected outcome for a write, if any.
func (mc *MemoryConnector) writeFault() (db.Result[db.WriteStatus], bool) {
	switch {
	case mc.StoredError != nil:
		return db.Result[db.WriteStatus]{}, true
	case mc.NoResponse:
		return db.EmptyResult[db.WriteStatus](), true
	case mc.WriteError != "":
		return db.ExpectedResult(db.WriteStatus{Errors: 1, FirstError: mc.WriteError}), true
	default:
		return db.Result[db.WriteStatus]{}, false
	}
}

func (mc *MemoryConnector) init() {
	if mc.teapots == nil {
		mc.teapots = map[string]model.Teapot{}
	}
}
