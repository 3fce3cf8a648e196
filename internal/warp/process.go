package warp

import (
	"fmt"
	"log"
)

// #region process

// phaseWeights is the fixed combine weight table for the pre-warp path,
// truncated to the active team count.
var phaseWeights = []float64{0.1, 0.2, 0.3, 0.4}

// Process fans the input out to every active team, records it in the
// diversity tracker, and combines the outputs: elementwise mean at light
// speed, weighted average otherwise. Low diversity is surfaced as a
// warning only; no corrective action is taken here.
func (s *System) Process(input []float64) []float64 {
	var outputs [][]float64
	for _, t := range s.teams {
		if t.Active {
			outputs = append(outputs, t.process(input))
		}
	}

	s.diversity.Record(input)

	if len(outputs) == 0 {
		return nil
	}

	var combined []float64
	if s.lightSpeed {
		combined = combineMean(outputs)
	} else {
		combined = combineWeighted(outputs, phaseWeights)
	}

	if s.diversity.Low() {
		log.Printf("[WARP] low task diversity detected, potential overfitting risk")
	}
	return combined
}

// DiversityLow reports the tracker's current verdict, for policy layers
// that want to act on the signal Process only logs.
func (s *System) DiversityLow() bool { return s.diversity.Low() }

// #endregion process

// #region combine

// combineMean is the light-speed path: elementwise mean across all
// outputs. Teams transform the same input, so output lengths match.
func combineMean(outputs [][]float64) []float64 {
	n := len(outputs[0])
	combined := make([]float64, n)
	for _, out := range outputs {
		for i := 0; i < n && i < len(out); i++ {
			combined[i] += out[i]
		}
	}
	for i := range combined {
		combined[i] /= float64(len(outputs))
	}
	return combined
}

// combineWeighted averages outputs with the weight table truncated to the
// output count; the divisor is the sum of the weights actually used, so
// two teams combine as (0.1*a + 0.2*b) / 0.3. More outputs than weights
// can only happen at light speed, which takes the mean path instead; fall
// back to mean if it ever does.
func combineWeighted(outputs [][]float64, weights []float64) []float64 {
	if len(outputs) > len(weights) {
		return combineMean(outputs)
	}
	used := weights[:len(outputs)]
	var weightSum float64
	for _, w := range used {
		weightSum += w
	}
	n := len(outputs[0])
	combined := make([]float64, n)
	for j, out := range outputs {
		for i := 0; i < n && i < len(out); i++ {
			combined[i] += out[i] * used[j]
		}
	}
	for i := range combined {
		combined[i] /= weightSum
	}
	return combined
}

// #endregion combine

// #region diversity

// DiversityTracker watches a fixed window of recent inputs for repetition.
// The low-diversity verdict only fires once the window is full.
type DiversityTracker struct {
	window    []string
	size      int
	threshold float64
}

// NewDiversityTracker creates a tracker over a fixed window.
func NewDiversityTracker(size int, threshold float64) *DiversityTracker {
	if size <= 0 {
		size = 100
	}
	return &DiversityTracker{size: size, threshold: threshold}
}

// Record appends an input to the window, evicting the oldest past capacity.
func (d *DiversityTracker) Record(input []float64) {
	d.window = append(d.window, fmt.Sprintf("%v", input))
	if len(d.window) > d.size {
		d.window = d.window[1:]
	}
}

// Low reports whether the full window's distinct ratio is below the
// threshold.
func (d *DiversityTracker) Low() bool {
	if len(d.window) < d.size {
		return false
	}
	distinct := make(map[string]struct{}, len(d.window))
	for _, task := range d.window {
		distinct[task] = struct{}{}
	}
	return float64(len(distinct))/float64(d.size) < d.threshold
}

// #endregion diversity
