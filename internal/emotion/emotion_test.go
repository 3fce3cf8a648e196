package emotion

import (
	"errors"
	"math"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	for _, e := range Emotions {
		v, err := s.Get(e)
		if err != nil {
			t.Fatalf("get %s: %v", e, err)
		}
		if v != DefaultIntensity {
			t.Fatalf("%s = %v, want %v", e, v, DefaultIntensity)
		}
	}
	// All-equal channels: stability (50+50-50-50)/2 = 0
	if s.Stability() != 0 {
		t.Fatalf("stability = %v, want 0", s.Stability())
	}
	if s.Adaptability() != 25 {
		t.Fatalf("adaptability = %v, want 25", s.Adaptability())
	}
	if s.SocialAlignment() != 0 {
		t.Fatalf("social alignment = %v, want 0", s.SocialAlignment())
	}
}

func TestUpdateJoyScenario(t *testing.T) {
	s := NewState()
	if err := s.Update(Joy, 20, DefaultDecay); err != nil {
		t.Fatalf("update: %v", err)
	}

	joy, _ := s.Get(Joy)
	if joy != 70 {
		t.Fatalf("joy = %v, want 70", joy)
	}
	for _, e := range Emotions {
		if e == Joy {
			continue
		}
		v, _ := s.Get(e)
		if v != 45.0 {
			t.Fatalf("%s = %v, want 45.0", e, v)
		}
	}
	// stability = (70 + 45 - 45 - 45) / 2 = 12.5
	if s.Stability() != 12.5 {
		t.Fatalf("stability = %v, want 12.5", s.Stability())
	}
}

func TestUpdateClampsToBounds(t *testing.T) {
	s := NewState()
	if err := s.Update(Fear, 500, DefaultDecay); err != nil {
		t.Fatalf("update: %v", err)
	}
	fear, _ := s.Get(Fear)
	if fear != 100 {
		t.Fatalf("fear = %v, want 100", fear)
	}

	if err := s.Update(Fear, -500, DefaultDecay); err != nil {
		t.Fatalf("update: %v", err)
	}
	fear, _ = s.Get(Fear)
	if fear != 0 {
		t.Fatalf("fear = %v, want 0", fear)
	}

	for _, e := range Emotions {
		v, _ := s.Get(e)
		if v < 0 || v > 100 {
			t.Fatalf("%s = %v out of [0,100]", e, v)
		}
	}
}

func TestUpdateUnknownEmotion(t *testing.T) {
	s := NewState()
	before := s.Intensities()

	err := s.Update(Emotion("boredom"), 10, DefaultDecay)
	if !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("err = %v, want ErrUnknownEmotion", err)
	}

	// No mutation on rejected update.
	after := s.Intensities()
	for e, v := range before {
		if after[e] != v {
			t.Fatalf("%s mutated after rejected update: %v → %v", e, v, after[e])
		}
	}
}

func TestDominantTieBreaksByOrder(t *testing.T) {
	s := NewState()
	// All equal at 50 — joy wins by enumeration order.
	e, v := s.Dominant()
	if e != Joy || v != 50 {
		t.Fatalf("dominant = %s/%v, want joy/50", e, v)
	}

	if err := s.Update(Trust, 30, 1.0); err != nil {
		t.Fatalf("update: %v", err)
	}
	e, v = s.Dominant()
	if e != Trust || v != 80 {
		t.Fatalf("dominant = %s/%v, want trust/80", e, v)
	}
}

func TestVectorNormalized(t *testing.T) {
	s := NewState()
	vec := s.Vector()
	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	if math.Abs(sumSq-1.0) > 1e-9 {
		t.Fatalf("vector norm² = %v, want 1", sumSq)
	}
}

func TestDistanceDirectionOnly(t *testing.T) {
	a := NewState()
	b := NewState()
	if d := a.Distance(b); d != 0 {
		t.Fatalf("distance of identical states = %v, want 0", d)
	}

	// Uniform scaling changes magnitude, not direction.
	for _, e := range Emotions {
		if err := b.Update(e, 0, 0.5); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if d := a.Distance(b); math.Abs(d) > 1e-9 {
		t.Fatalf("distance after uniform scaling = %v, want ~0", d)
	}

	if err := b.Update(Anger, 40, 1.0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if d := a.Distance(b); d <= 0 {
		t.Fatalf("distance after skew = %v, want > 0", d)
	}
}

func TestDerivedMetricsDeterministic(t *testing.T) {
	a := NewState()
	b := NewState()
	moves := []struct {
		e Emotion
		d float64
	}{
		{Joy, 12}, {Fear, -8}, {Surprise, 30}, {Disgust, 5},
	}
	for _, m := range moves {
		if err := a.Update(m.e, m.d, DefaultDecay); err != nil {
			t.Fatalf("update a: %v", err)
		}
		if err := b.Update(m.e, m.d, DefaultDecay); err != nil {
			t.Fatalf("update b: %v", err)
		}
	}
	if a.Stability() != b.Stability() || a.Adaptability() != b.Adaptability() || a.SocialAlignment() != b.SocialAlignment() {
		t.Fatal("derived metrics diverged for identical update sequences")
	}
}
