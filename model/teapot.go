package model

import (
	"math"

	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Teapot is the stored teapot record. Id is generated by the database on
// insert and is never written by the service.
type Teapot struct {
	Id            string `bson:"_id,omitempty"`
	Name          string `bson:"name"`
	Capacity      int32  `bson:"capacity"`
	ShortAndStout bool   `bson:"short_and_stout"`
}

var (
	// bson fields for the teapot struct
	TeapotIdKey            = bsonutil.MustHaveTag(Teapot{}, "Id")
	TeapotNameKey          = bsonutil.MustHaveTag(Teapot{}, "Name")
	TeapotCapacityKey      = bsonutil.MustHaveTag(Teapot{}, "Capacity")
	TeapotShortAndStoutKey = bsonutil.MustHaveTag(Teapot{}, "ShortAndStout")
)

// TeapotPatch is a partial update to a teapot. Nil fields are left
// untouched.
type TeapotPatch struct {
	Name          *string
	Capacity      *int32
	ShortAndStout *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TeapotPatch) IsEmpty() bool {
	return p.Name == nil && p.Capacity == nil && p.ShortAndStout == nil
}

// SetFields returns the fields to $set, omitting absent ones.
func (p TeapotPatch) SetFields() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set[TeapotNameKey] = *p.Name
	}
	if p.Capacity != nil {
		set[TeapotCapacityKey] = *p.Capacity
	}
	if p.ShortAndStout != nil {
		set[TeapotShortAndStoutKey] = *p.ShortAndStout
	}
	return set
}

// Apply returns a copy of t with the patch applied.
func (p TeapotPatch) Apply(t Teapot) Teapot {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.ShortAndStout != nil {
		t.ShortAndStout = *p.ShortAndStout
	}
	return t
}

// TeapotFromRaw strictly decodes a stored document. Every field must be
// present with the right type; capacity may be stored as any integer that
// fits in 32 bits.
func TeapotFromRaw(raw bson.Raw) (*Teapot, error) {
	if err := raw.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid document")
	}
	elems, err := raw.Elements()
	if err != nil {
		return nil, errors.Wrap(err, "reading document elements")
	}
	if len(elems) == 0 {
		return nil, errors.New("empty document")
	}

	t := &Teapot{}
	if val, err := raw.LookupErr(TeapotIdKey); err == nil {
		switch val.Type {
		case bsontype.ObjectID:
			t.Id = val.ObjectID().Hex()
		case bsontype.String:
			t.Id = val.StringValue()
		default:
			return nil, errors.Errorf("field '%s' has unsupported type %s", TeapotIdKey, val.Type)
		}
	}

	name, err := raw.LookupErr(TeapotNameKey)
	if err != nil {
		return nil, errors.Errorf("missing field '%s'", TeapotNameKey)
	}
	var ok bool
	if t.Name, ok = name.StringValueOK(); !ok {
		return nil, errors.Errorf("field '%s' must be a string, not %s", TeapotNameKey, name.Type)
	}

	capacity, err := raw.LookupErr(TeapotCapacityKey)
	if err != nil {
		return nil, errors.Errorf("missing field '%s'", TeapotCapacityKey)
	}
	switch capacity.Type {
	case bsontype.Int32:
		t.Capacity = capacity.Int32()
	case bsontype.Int64:
		n := capacity.Int64()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, errors.Errorf("field '%s' value %d overflows a 32-bit integer", TeapotCapacityKey, n)
		}
		t.Capacity = int32(n)
	default:
		return nil, errors.Errorf("field '%s' must be an integer, not %s", TeapotCapacityKey, capacity.Type)
	}

	shortAndStout, err := raw.LookupErr(TeapotShortAndStoutKey)
	if err != nil {
		return nil, errors.Errorf("missing field '%s'", TeapotShortAndStoutKey)
	}
	if t.ShortAndStout, ok = shortAndStout.BooleanOK(); !ok {
		return nil, errors.Errorf("field '%s' must be a boolean, not %s", TeapotShortAndStoutKey, shortAndStout.Type)
	}

	return t, nil
}
