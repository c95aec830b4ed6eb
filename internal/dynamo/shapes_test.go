package dynamo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/modeldrop/internal/dynamo"
)

func TestMakeLinFn(t *testing.T) {
	fn := dynamo.MakeLinFn(2, 3)
	require.Equal(t, 0.0, fn(3))
	require.Equal(t, 2.0, fn(4))
	require.Equal(t, -6.0, fn(0))
}

func TestMakeSqFn(t *testing.T) {
	// a/(b-c*x)^2 - d with a=1, b=2, c=1, d=0.25: at x=0 -> 1/4 - 1/4 = 0.
	fn := dynamo.MakeSqFn(1, 2, 1, 0.25)
	require.InDelta(t, 0.0, fn(0), 1e-12)
	require.InDelta(t, 0.75, fn(1), 1e-12)
}

func TestMakeExpFn(t *testing.T) {
	// Passes through (x, y) by construction.
	fn := dynamo.MakeExpFn(0.95, 0.0, 0.5, -0.01)
	require.InDelta(t, 0.0, fn(0.95), 1e-12)
	// Approaches yMin far below x.
	require.InDelta(t, -0.01, fn(-100), 1e-6)
}

func TestMakeCutoffFn(t *testing.T) {
	lin := dynamo.MakeLinFn(1, 0)
	fn := dynamo.MakeCutoffFn(lin, 2)

	require.Equal(t, 1.0, fn(1))
	require.Equal(t, 2.0, fn(2))
	require.Equal(t, 2.0, fn(5), "inputs past the cutoff clamp to the cutoff value")
}

func TestMakeApproachFn(t *testing.T) {
	fn := dynamo.MakeApproachFn(1, 3, 10)

	require.Equal(t, 1.0, fn(-1), "negative inputs hold the initial value")
	require.Equal(t, 1.0, fn(0))
	require.InDelta(t, 2.0, fn(10), 1e-12, "midpoint reached at xAtMidpoint")
	require.InDelta(t, 3.0, fn(1e9), 1e-6)
}

func TestExtractEditableParams(t *testing.T) {
	b := &dynamo.Base{}
	b.Init("m")
	b.Param.Set("growthRate", 0.02)
	b.Param.Set("zeroed", 0)
	b.EditableParams = []dynamo.EditableParam{{Key: "time", Max: 500}}

	require.NoError(t, b.ExtractEditableParams())

	byKey := map[string]dynamo.EditableParam{}
	for _, p := range b.EditableParams {
		byKey[p.Key] = p
	}

	require.Equal(t, 500.0, byKey["time"].Max, "explicit descriptors win")
	require.InDelta(t, 0.1, byKey["growthRate"].Max, 1e-12)
	require.Equal(t, 1.0, byKey["zeroed"].Max)
	_, hasDt := byKey["dt"]
	require.False(t, hasDt, "dt is never editable")
}

func TestExtractEditableParamsNegative(t *testing.T) {
	b := &dynamo.Base{}
	b.Init("m")
	b.Param.Set("rate", -0.1)

	require.Error(t, b.ExtractEditableParams())
}
