package model

import (
	"math"

	"github.com/evergreen-ci/teapot/model"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// APITeapot is the model to be returned by the API whenever teapots are
// fetched, and the body accepted when one is created.
type APITeapot struct {
	Name          *string `json:"name"`
	Capacity      *int    `json:"capacity"`
	ShortAndStout *bool   `json:"short_and_stout"`
}

// BuildFromService converts from a service level teapot to an APITeapot.
func (t *APITeapot) BuildFromService(in model.Teapot) {
	t.Name = utility.ToStringPtr(in.Name)
	t.Capacity = utility.ToIntPtr(int(in.Capacity))
	t.ShortAndStout = utility.ToBoolPtr(in.ShortAndStout)
}

// ToService returns a service layer teapot. Every field is required.
func (t *APITeapot) ToService() (model.Teapot, error) {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(t.Name == nil, "missing field 'name'")
	catcher.NewWhen(t.Capacity == nil, "missing field 'capacity'")
	catcher.NewWhen(t.ShortAndStout == nil, "missing field 'short_and_stout'")
	if t.Capacity != nil {
		catcher.Add(checkCapacity(*t.Capacity))
	}
	if catcher.HasErrors() {
		return model.Teapot{}, catcher.Resolve()
	}

	return model.Teapot{
		Name:          utility.FromStringPtr(t.Name),
		Capacity:      int32(utility.FromIntPtr(t.Capacity)),
		ShortAndStout: utility.FromBoolPtr(t.ShortAndStout),
	}, nil
}

// APITeapotPatch is the body accepted when a teapot is updated. Omitted
// fields are left unchanged.
type APITeapotPatch struct {
	Name          *string `json:"name,omitempty"`
	Capacity      *int    `json:"capacity,omitempty"`
	ShortAndStout *bool   `json:"short_and_stout,omitempty"`
}

func (p *APITeapotPatch) ToService() (model.TeapotPatch, error) {
	patch := model.TeapotPatch{
		Name:          p.Name,
		ShortAndStout: p.ShortAndStout,
	}
	if p.Capacity != nil {
		if err := checkCapacity(*p.Capacity); err != nil {
			return model.TeapotPatch{}, err
		}
		patch.Capacity = utility.ToInt32Ptr(int32(*p.Capacity))
	}

	return patch, nil
}

// APITeapotCreateResponse is returned after a teapot is created.
type APITeapotCreateResponse struct {
	ID string `json:"id"`
}

func checkCapacity(capacity int) error {
	if capacity < math.MinInt32 || capacity > math.MaxInt32 {
		return errors.Errorf("capacity %d does not fit in a 32-bit integer", capacity)
	}
	return nil
}
