package math

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, int64(-1), Min(int64(-1), int64(0)))
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		n := RandRange(rng, 10, 50)
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 50)
	}
}

func TestRandRangeSwappedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		n := RandRange(rng, 50, 10)
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 50)
	}
}

func TestRandRangeSingleValue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 5, RandRange(rng, 5, 5))
}
