package normalize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ridvanpektas1990-bit/amz/internal/normalize"
)

func TestPick_FirstPresentKeyWins(t *testing.T) {
	obj := map[string]any{
		"FeeType": "Commission",
		"feeType": "shadowed",
	}

	assert.Equal(t, "Commission", normalize.Pick(obj, "FeeType", "feeType"))
	assert.Equal(t, "shadowed", normalize.Pick(obj, "missing", "feeType"))
	assert.Nil(t, normalize.Pick(obj, "absent", "alsoAbsent"))
}

func TestPick_NilObjectDoesNotPanic(t *testing.T) {
	assert.Nil(t, normalize.Pick(nil, "FeeType"))
	assert.Equal(t, "", normalize.PickString(nil, "FeeType"))
	assert.Nil(t, normalize.PickMap(nil, "FeeAmount"))
	assert.Nil(t, normalize.PickSlice(nil, "FeeList"))

	_, ok := normalize.PickFloat(nil, "Amount")
	assert.False(t, ok)
}

func TestPick_SkipsExplicitNilValues(t *testing.T) {
	obj := map[string]any{
		"Amount": nil,
		"amount": 3.5,
	}
	v, ok := normalize.PickFloat(obj, "Amount", "amount")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestPickFloat_AcceptsNumericStrings(t *testing.T) {
	obj := map[string]any{"Amount": "-1.20"}
	v, ok := normalize.PickFloat(obj, "Amount")
	assert.True(t, ok)
	assert.Equal(t, -1.2, v)
}

func TestPickFloat_RejectsNonFinite(t *testing.T) {
	for _, bad := range []any{math.NaN(), math.Inf(1), "NaN", "not-a-number", true} {
		_, ok := normalize.PickFloat(map[string]any{"Amount": bad}, "Amount")
		assert.False(t, ok, "value %v should be rejected", bad)
	}
}

func TestPickMapAndSlice_WrongTypesYieldNil(t *testing.T) {
	obj := map[string]any{
		"FeeAmount": "oops",
		"FeeList":   map[string]any{},
	}
	assert.Nil(t, normalize.PickMap(obj, "FeeAmount"))
	assert.Nil(t, normalize.PickSlice(obj, "FeeList"))
}
