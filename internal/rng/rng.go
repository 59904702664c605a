package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Locked is a *rand.Rand safe for use by many games at once.
type Locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New seeds from the clock when seed is 0.
func New(seed int64) *Locked {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Locked{r: rand.New(rand.NewSource(seed))}
}

func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
