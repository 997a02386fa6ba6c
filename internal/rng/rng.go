// Package rng abstracts the random source used for quest sampling and
// world-boss naming so tests can script outcomes.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Roller produces random integers
type Roller interface {
	// Intn returns a uniform random int in [0, n)
	Intn(n int) int
}

// mathRoller guards its source with a mutex; quest sampling can run from
// concurrent player actions.
type mathRoller struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New creates a Roller seeded from the current time
func New() Roller {
	return &mathRoller{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded creates a Roller with a fixed seed
func NewSeeded(seed int64) Roller {
	return &mathRoller{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRoller) Intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.r.Intn(n)
}

// SampleIndexes picks k distinct indexes from [0, n) without replacement.
// When k >= n every index is returned in order.
func SampleIndexes(roller Roller, n, k int) []int {
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	out := make([]int, 0, k)
	for i := 0; i < k; i++ {
		j := roller.Intn(len(pool))
		out = append(out, pool[j])
		pool = append(pool[:j], pool[j+1:]...)
	}
	return out
}
