package engine

import (
	"fmt"
	"math/rand"
)

// Bag is a double-buffered 7-bag randomizer. The front buffer is dealt
// in order while the back buffer already holds the next shuffled bag, so
// the next piece is always known even across a bag boundary.
type Bag struct {
	order     [ShapeCount]Shape
	nextOrder [ShapeCount]Shape
	index     int
	rng       *rand.Rand
}

// NewBag creates a bag with both buffers freshly shuffled from rng.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		panic("tetris: bag requires a random source")
	}
	b := &Bag{rng: rng}
	for i := range ShapeCount {
		b.order[i] = Shape(i)
		b.nextOrder[i] = Shape(i)
	}
	b.shuffle(&b.order)
	b.shuffle(&b.nextOrder)
	return b
}

// NewBagFromOrders creates a bag with fixed front and back buffers.
// Later back buffers are shuffled from rng. Panics unless both orders are
// permutations of the seven shapes.
func NewBagFromOrders(order, next [ShapeCount]Shape, rng *rand.Rand) *Bag {
	if rng == nil {
		panic("tetris: bag requires a random source")
	}
	mustPermutation(order)
	mustPermutation(next)
	return &Bag{order: order, nextOrder: next, rng: rng}
}

// Current returns the shape at the front of the sequence.
func (b *Bag) Current() Shape {
	return b.order[b.index]
}

// PeekNext returns the shape Current will return after the next Advance.
func (b *Bag) PeekNext() Shape {
	if b.index+1 < len(b.order) {
		return b.order[b.index+1]
	}
	return b.nextOrder[(b.index+1)%len(b.order)]
}

// Advance moves to the next shape. When the front buffer runs out the
// buffers swap and the new back buffer is reshuffled.
func (b *Bag) Advance() {
	b.index++
	if b.index >= len(b.order) {
		b.order, b.nextOrder = b.nextOrder, b.order
		b.shuffle(&b.nextOrder)
		b.index %= len(b.order)
	}
}

// shuffle permutes buf in place. rand.Shuffle is an unbiased Fisher-Yates.
func (b *Bag) shuffle(buf *[ShapeCount]Shape) {
	b.rng.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
}

func mustPermutation(order [ShapeCount]Shape) {
	var seen [ShapeCount]bool
	for _, s := range order {
		if !s.Valid() || seen[s] {
			panic(fmt.Sprintf("tetris: bag order %v is not a permutation of the seven shapes", order))
		}
		seen[s] = true
	}
}
