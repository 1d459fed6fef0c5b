package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/evergreen-ci/teapot/model"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPITeapotBuildFromService(t *testing.T) {
	apiTeapot := APITeapot{}
	apiTeapot.BuildFromService(model.Teapot{Id: "abc", Name: "betty", Capacity: 6, ShortAndStout: true})

	out, err := json.Marshal(apiTeapot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "betty", "capacity": 6, "short_and_stout": true}`, string(out))
}

func TestAPITeapotToService(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		apiTeapot := APITeapot{}
		require.NoError(t, json.Unmarshal([]byte(`{"name": "utah", "capacity": 2, "short_and_stout": false}`), &apiTeapot))

		teapot, err := apiTeapot.ToService()
		require.NoError(t, err)
		assert.Equal(t, model.Teapot{Name: "utah", Capacity: 2}, teapot)
	})
	t.Run("MissingCapacity", func(t *testing.T) {
		apiTeapot := APITeapot{}
		require.NoError(t, json.Unmarshal([]byte(`{"name": "utah", "short_and_stout": false}`), &apiTeapot))

		_, err := apiTeapot.ToService()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capacity")
	})
	t.Run("NullFieldIsMissing", func(t *testing.T) {
		apiTeapot := APITeapot{}
		require.NoError(t, json.Unmarshal([]byte(`{"name": null, "capacity": 1, "short_and_stout": true}`), &apiTeapot))

		_, err := apiTeapot.ToService()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})
	t.Run("EveryMissingFieldReported", func(t *testing.T) {
		apiTeapot := APITeapot{}
		_, err := apiTeapot.ToService()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "capacity")
		assert.Contains(t, err.Error(), "short_and_stout")
	})
	t.Run("CapacityOverflow", func(t *testing.T) {
		apiTeapot := APITeapot{
			Name:          utility.ToStringPtr("huge"),
			Capacity:      utility.ToIntPtr(math.MaxInt32 + 1),
			ShortAndStout: utility.TruePtr(),
		}
		_, err := apiTeapot.ToService()
		assert.Error(t, err)
	})
	t.Run("MistypedField", func(t *testing.T) {
		apiTeapot := APITeapot{}
		assert.Error(t, json.Unmarshal([]byte(`{"name": "utah", "capacity": "two", "short_and_stout": false}`), &apiTeapot))
	})
}

func TestAPITeapotPatchToService(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		apiPatch := APITeapotPatch{}
		require.NoError(t, json.Unmarshal([]byte(`{}`), &apiPatch))

		patch, err := apiPatch.ToService()
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})
	t.Run("CapacityOnly", func(t *testing.T) {
		apiPatch := APITeapotPatch{}
		require.NoError(t, json.Unmarshal([]byte(`{"capacity": 42}`), &apiPatch))

		patch, err := apiPatch.ToService()
		require.NoError(t, err)
		assert.Nil(t, patch.Name)
		assert.Nil(t, patch.ShortAndStout)
		require.NotNil(t, patch.Capacity)
		assert.EqualValues(t, 42, *patch.Capacity)
	})
	t.Run("OmitsAbsentFieldsWhenSerialized", func(t *testing.T) {
		out, err := json.Marshal(APITeapotPatch{Name: utility.ToStringPtr("tall")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "tall"}`, string(out))
	})
	t.Run("CapacityOverflow", func(t *testing.T) {
		apiPatch := APITeapotPatch{Capacity: utility.ToIntPtr(math.MinInt32 - 1)}
		_, err := apiPatch.ToService()
		assert.Error(t, err)
	})
}
