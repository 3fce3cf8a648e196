// Package qmem is a classical probabilistic simulation of the agent's
// amplitude-style memory bank. Values live in normalized [0,1] slots,
// retrieval is noisy, and the layout can be reoptimized around access
// patterns. Nothing here performs real quantum computation.
package qmem

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// #region errors

// ErrIndexOutOfRange is returned for any slot index outside [0, size).
var ErrIndexOutOfRange = errors.New("memory index out of range")

// #endregion errors

// #region bank

// DefaultSize is the standard slot count.
const DefaultSize = 10

// accessHistoryCap bounds the retained access records.
const accessHistoryCap = 100

type accessKind string

const (
	accessStore    accessKind = "store"
	accessRetrieve accessKind = "retrieve"
)

type access struct {
	kind  accessKind
	index int
	at    time.Time
}

// Bank is a fixed-size slot array with pairwise entanglement strengths and
// a bounded access history.
type Bank struct {
	values       []float64
	entanglement [][]float64
	history      []access
	rng          *rand.Rand
	now          func() time.Time
}

// NewBank creates a bank with the given slot count. rng may be nil, in
// which case a time-seeded source is used; inject a seeded source for
// deterministic retrieval.
func NewBank(size int, rng *rand.Rand) *Bank {
	if size <= 0 {
		size = DefaultSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ent := make([][]float64, size)
	for i := range ent {
		ent[i] = make([]float64, size)
	}
	return &Bank{
		values:       make([]float64, size),
		entanglement: ent,
		rng:          rng,
		now:          time.Now,
	}
}

// Size returns the slot count.
func (b *Bank) Size() int { return len(b.values) }

// #endregion bank

// #region store-retrieve

// Store writes a value (0-100 scale) into a slot, normalized to [0,1].
func (b *Bank) Store(index int, value float64) error {
	if index < 0 || index >= len(b.values) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(b.values))
	}
	norm := value / 100.0
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	b.values[index] = norm
	b.recordAccess(accessStore, index)
	return nil
}

// Retrieve reads a slot back on the 0-100 scale with gaussian read noise
// (sigma 0.05 in normalized units), clamped before scaling.
func (b *Bank) Retrieve(index int) (float64, error) {
	if index < 0 || index >= len(b.values) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(b.values))
	}
	b.recordAccess(accessRetrieve, index)

	noisy := b.values[index] + b.rng.NormFloat64()*0.05
	if noisy < 0 {
		noisy = 0
	}
	if noisy > 1 {
		noisy = 1
	}
	return noisy * 100.0, nil
}

// Values returns a copy of the normalized slot values.
func (b *Bank) Values() []float64 {
	out := make([]float64, len(b.values))
	copy(out, b.values)
	return out
}

// #endregion store-retrieve

// #region entangle

// Entangle mixes two slots toward their mean in proportion to strength
// (1.0 = fully merged) and records the pairing for layout optimization.
func (b *Bank) Entangle(i, j int, strength float64) error {
	if i < 0 || i >= len(b.values) || j < 0 || j >= len(b.values) {
		return fmt.Errorf("%w: (%d,%d)", ErrIndexOutOfRange, i, j)
	}
	b.entanglement[i][j] = strength
	b.entanglement[j][i] = strength

	avg := (b.values[i] + b.values[j]) / 2
	b.values[i] = (1-strength)*b.values[i] + strength*avg
	b.values[j] = (1-strength)*b.values[j] + strength*avg
	return nil
}

// #endregion entangle

// #region layout

// AccessCounts tallies accesses per slot over the retained history.
func (b *Bank) AccessCounts() map[int]int {
	counts := make(map[int]int, len(b.values))
	for i := range b.values {
		counts[i] = 0
	}
	for _, a := range b.history {
		counts[a.index]++
	}
	return counts
}

// OptimizeLayout reorders slots by descending access frequency and remaps
// the entanglement matrix to match. Slot contents move; indices handed out
// before an optimization are not stable across it.
func (b *Bank) OptimizeLayout() {
	counts := b.AccessCounts()
	order := make([]int, len(b.values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool {
		return counts[order[a]] > counts[order[c]]
	})

	newValues := make([]float64, len(b.values))
	newEnt := make([][]float64, len(b.values))
	for i := range newEnt {
		newEnt[i] = make([]float64, len(b.values))
	}
	for newIdx, oldIdx := range order {
		newValues[newIdx] = b.values[oldIdx]
	}
	for i, oldI := range order {
		for j, oldJ := range order {
			newEnt[i][j] = b.entanglement[oldI][oldJ]
		}
	}
	b.values = newValues
	b.entanglement = newEnt
}

// #endregion layout

// #region helpers

func (b *Bank) recordAccess(kind accessKind, index int) {
	b.history = append(b.history, access{kind: kind, index: index, at: b.now()})
	if len(b.history) > accessHistoryCap {
		b.history = b.history[len(b.history)-accessHistoryCap:]
	}
}

// #endregion helpers
