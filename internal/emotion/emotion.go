package emotion

import (
	"fmt"
	"math"
)

// #region state

// State holds the eight bounded intensity channels plus the derived
// metrics, which are recomputed after every mutation and never set
// directly.
type State struct {
	values [8]float64

	stability       float64
	adaptability    float64
	socialAlignment float64
}

// NewState returns a State with every channel at DefaultIntensity.
func NewState() *State {
	s := &State{}
	for i := range s.values {
		s.values[i] = DefaultIntensity
	}
	s.recompute()
	return s
}

// #endregion state

// #region update

// Update adds delta to the named channel (clamped to [0,100]), decays every
// other channel by the decay factor, and recomputes the derived metrics.
// Unknown emotions are rejected before any mutation.
func (s *State) Update(e Emotion, delta, decay float64) error {
	idx, ok := emotionIndex[e]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmotion, e)
	}

	s.values[idx] = clamp(s.values[idx]+delta, 0, 100)
	for i := range s.values {
		if i != idx {
			s.values[i] *= decay
		}
	}
	s.recompute()
	return nil
}

// recompute refreshes the derived metrics from the primary channels.
func (s *State) recompute() {
	joy := s.values[emotionIndex[Joy]]
	trust := s.values[emotionIndex[Trust]]
	fear := s.values[emotionIndex[Fear]]
	anger := s.values[emotionIndex[Anger]]
	sadness := s.values[emotionIndex[Sadness]]
	disgust := s.values[emotionIndex[Disgust]]
	anticipation := s.values[emotionIndex[Anticipation]]
	surprise := s.values[emotionIndex[Surprise]]

	s.stability = (joy + trust - fear - anger) / 2
	s.adaptability = (anticipation + surprise - sadness) / 2
	s.socialAlignment = trust - disgust
}

// #endregion update

// #region queries

// Get returns the current intensity of one channel.
func (s *State) Get(e Emotion) (float64, error) {
	idx, ok := emotionIndex[e]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEmotion, e)
	}
	return s.values[idx], nil
}

// Intensities returns a copy of all channels keyed by name.
func (s *State) Intensities() map[Emotion]float64 {
	out := make(map[Emotion]float64, len(Emotions))
	for i, e := range Emotions {
		out[e] = s.values[i]
	}
	return out
}

// Dominant returns the maximum-intensity channel. Ties break by the fixed
// enumeration order.
func (s *State) Dominant() (Emotion, float64) {
	best := 0
	for i := 1; i < len(s.values); i++ {
		if s.values[i] > s.values[best] {
			best = i
		}
	}
	return Emotions[best], s.values[best]
}

// Stability is (joy + trust - fear - anger) / 2. Unclamped.
func (s *State) Stability() float64 { return s.stability }

// Adaptability is (anticipation + surprise - sadness) / 2. Unclamped.
func (s *State) Adaptability() float64 { return s.adaptability }

// SocialAlignment is trust - disgust. Unclamped.
func (s *State) SocialAlignment() float64 { return s.socialAlignment }

// #endregion queries

// #region vector

// Vector returns the L2-normalized intensity vector in enumeration order.
// A zero state returns the zero vector.
func (s *State) Vector() [8]float64 {
	var out [8]float64
	var sumSq float64
	for _, v := range s.values {
		sumSq += v * v
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return out
	}
	for i, v := range s.values {
		out[i] = v / norm
	}
	return out
}

// Distance is the Euclidean distance between the normalized vectors of two
// states. Direction-only: magnitude differences are not captured.
func (s *State) Distance(other *State) float64 {
	a := s.Vector()
	b := other.Vector()
	var sumSq float64
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// #endregion vector

// #region helpers

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
