package planner

import (
	"math"

	"meal-planner/internal/catalog"
	"meal-planner/internal/models"
)

// Normalize turns weights into ratios over keys that sum to 1. A nil weight map
// means the built-in distribution. Keys missing from the map, and negative or
// NaN weights, count as zero; when nothing positive remains every key gets 1/N.
func Normalize(keys []string, weights map[string]float64) map[string]float64 {
	if weights == nil {
		weights = catalog.DefaultDistribution()
	}

	dist := make(map[string]float64, len(keys))
	if len(keys) == 0 {
		return dist
	}

	var sum, peak float64
	for _, k := range keys {
		if _, seen := dist[k]; seen {
			continue
		}
		w := weights[k]
		switch {
		case !(w > 0):
			w = 0
		case math.IsInf(w, 1):
			w = math.MaxFloat64
		}
		dist[k] = w
		sum += w
		peak = math.Max(peak, w)
	}

	// Huge weights overflow the sum; relative to the peak they stay finite.
	if math.IsInf(sum, 1) {
		sum = 0
		for k, w := range dist {
			dist[k] = w / peak
			sum += dist[k]
		}
	}

	if sum <= 0 {
		even := 1 / float64(len(dist))
		for k := range dist {
			dist[k] = even
		}
		return dist
	}

	for k, w := range dist {
		dist[k] = w / sum
	}
	return dist
}

// SplitTargets scales the daily target by each key's ratio. Each field is
// rounded independently, so the parts may not add back to the daily target
// exactly.
func SplitTargets(daily models.MacroTargets, dist map[string]float64) map[string]models.MacroTargets {
	out := make(map[string]models.MacroTargets, len(dist))
	for k, ratio := range dist {
		out[k] = daily.Scale(ratio)
	}
	return out
}
