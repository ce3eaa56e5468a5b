package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagFairness(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		bag := NewBag(rand.New(rand.NewSource(seed)))

		const cycles = 20
		counts := make(map[Shape]int)
		for i := range cycles * ShapeCount {
			if i%ShapeCount == 0 {
				// Every aligned window of seven is one full bag.
				window := make(map[Shape]bool)
				probe := *bag
				for range ShapeCount {
					window[probe.Current()] = true
					probe.index++
					if probe.index >= ShapeCount {
						break
					}
				}
				assert.Len(t, window, ShapeCount, "seed %d window %d", seed, i/ShapeCount)
			}
			counts[bag.Current()]++
			bag.Advance()
		}

		require.Len(t, counts, ShapeCount)
		for s, n := range counts {
			assert.Equal(t, cycles, n, "seed %d shape %s", seed, s)
		}
	}
}

func TestBagPeekNext(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(3)))
	for i := range 100 {
		next := bag.PeekNext()
		bag.Advance()
		require.Equal(t, next, bag.Current(), "advance %d", i)
	}
}

func TestBagPeekAcrossBoundary(t *testing.T) {
	order := [ShapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
	next := [ShapeCount]Shape{ShapeL, ShapeJ, ShapeZ, ShapeS, ShapeT, ShapeO, ShapeI}
	bag := NewBagFromOrders(order, next, rand.New(rand.NewSource(1)))

	for i := range ShapeCount - 1 {
		assert.Equal(t, order[i], bag.Current())
		bag.Advance()
	}
	assert.Equal(t, ShapeL, bag.Current())
	assert.Equal(t, ShapeL, bag.PeekNext(), "peek reads the back buffer at the end of a bag")

	bag.Advance()
	assert.Equal(t, ShapeL, bag.Current())
	assert.Equal(t, ShapeJ, bag.PeekNext())
}

func TestBagDeterministic(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(99)))
	b := NewBag(rand.New(rand.NewSource(99)))
	for range 50 {
		require.Equal(t, a.Current(), b.Current())
		a.Advance()
		b.Advance()
	}
}

func TestBagRejectsBrokenOrders(t *testing.T) {
	good := [ShapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
	dup := [ShapeCount]Shape{ShapeI, ShapeI, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
	bad := [ShapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, Shape(9)}
	rng := rand.New(rand.NewSource(1))

	assert.Panics(t, func() { NewBagFromOrders(dup, good, rng) })
	assert.Panics(t, func() { NewBagFromOrders(good, bad, rng) })
	assert.Panics(t, func() { NewBag(nil) })
	assert.NotPanics(t, func() { NewBagFromOrders(good, good, rng) })
}
