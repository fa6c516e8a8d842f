package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnion_MergesOverlapping(t *testing.T) {
	result := Union([]TimeInterval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 11 * 60, End: 14 * 60},
		{Start: 16 * 60, End: 18 * 60},
	})

	assert.Equal(t, []TimeInterval{
		{Start: 9 * 60, End: 14 * 60},
		{Start: 16 * 60, End: 18 * 60},
	}, result)
}

func TestUnion_MergesAdjacent(t *testing.T) {
	result := Union([]TimeInterval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 12 * 60, End: 14 * 60},
	})

	assert.Equal(t, []TimeInterval{{Start: 9 * 60, End: 14 * 60}}, result)
}

func TestUnion_DropsZeroDuration(t *testing.T) {
	result := Union([]TimeInterval{
		{Start: 600, End: 600},
		{Start: 700, End: 800},
	})

	assert.Equal(t, []TimeInterval{{Start: 700, End: 800}}, result)
}

func TestUnion_SortsUnorderedInput(t *testing.T) {
	result := Union([]TimeInterval{
		{Start: 16 * 60, End: 18 * 60},
		{Start: 9 * 60, End: 10 * 60},
	})

	assert.Equal(t, []TimeInterval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 16 * 60, End: 18 * 60},
	}, result)
}

func TestUnion_Empty(t *testing.T) {
	assert.Nil(t, Union(nil))
	assert.Nil(t, Union([]TimeInterval{{Start: 100, End: 100}}))
}

func TestSubtract_MiddleRemovalSplitsBase(t *testing.T) {
	base := TimeInterval{Start: 9 * 60, End: 17 * 60}
	result := Subtract(base, []TimeInterval{{Start: 12 * 60, End: 14 * 60}})

	assert.Equal(t, []TimeInterval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 14 * 60, End: 17 * 60},
	}, result)
}

func TestSubtract_MultipleRemovals(t *testing.T) {
	base := TimeInterval{Start: 9 * 60, End: 18 * 60}
	result := Subtract(base, []TimeInterval{
		{Start: 10 * 60, End: 11 * 60},
		{Start: 14 * 60, End: 15 * 60},
	})

	assert.Equal(t, []TimeInterval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 11 * 60, End: 14 * 60},
		{Start: 15 * 60, End: 18 * 60},
	}, result)
}

func TestSubtract_CompleteRemoval(t *testing.T) {
	base := TimeInterval{Start: 10 * 60, End: 12 * 60}
	result := Subtract(base, []TimeInterval{{Start: 9 * 60, End: 13 * 60}})

	assert.Empty(t, result)
}

func TestSubtract_NoOverlapKeepsBase(t *testing.T) {
	base := TimeInterval{Start: 10 * 60, End: 12 * 60}
	result := Subtract(base, []TimeInterval{{Start: 13 * 60, End: 14 * 60}})

	assert.Equal(t, []TimeInterval{base}, result)
}

func TestSubtract_OverlappingRemovalsNotDoubleCounted(t *testing.T) {
	base := TimeInterval{Start: 9 * 60, End: 17 * 60}
	result := Subtract(base, []TimeInterval{
		{Start: 10 * 60, End: 13 * 60},
		{Start: 12 * 60, End: 14 * 60},
	})

	assert.Equal(t, []TimeInterval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 14 * 60, End: 17 * 60},
	}, result)
}

func TestSubtract_NoRemovals(t *testing.T) {
	base := TimeInterval{Start: 9 * 60, End: 17 * 60}
	assert.Equal(t, []TimeInterval{base}, Subtract(base, nil))
}

func TestIntersectAll_CommonPortions(t *testing.T) {
	a := []TimeInterval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 14 * 60, End: 18 * 60},
	}
	b := []TimeInterval{
		{Start: 10 * 60, End: 15 * 60},
		{Start: 17 * 60, End: 19 * 60},
	}

	result := IntersectAll(a, b)

	assert.Equal(t, []TimeInterval{
		{Start: 10 * 60, End: 12 * 60},
		{Start: 14 * 60, End: 15 * 60},
		{Start: 17 * 60, End: 18 * 60},
	}, result)
}

func TestIntersectAll_Disjoint(t *testing.T) {
	a := []TimeInterval{{Start: 9 * 60, End: 10 * 60}}
	b := []TimeInterval{{Start: 11 * 60, End: 12 * 60}}

	assert.Empty(t, IntersectAll(a, b))
}

func TestTotalDuration(t *testing.T) {
	total := TotalDuration([]TimeInterval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 14 * 60, End: 16 * 60},
	})

	assert.Equal(t, 180, total)
}
