package evolution

import (
	"math"
	"sort"
	"time"
)

// defaultBurstWindowDays is the width of the sliding window used to
// measure how concentrated a file's versions are in time.
const defaultBurstWindowDays = 7

// Summary condenses a file's whole evolution into aggregate figures.
type Summary struct {
	TotalVersions int
	LinesAdded    int
	LinesDeleted  int
	// BurstScore is the share of versions landing inside the densest
	// activity window: 1.0 means every version fits in one window.
	BurstScore float64
	// ChurnEntropy is the normalized Shannon entropy of line churn
	// across versions: 0 means a single version carried all the
	// change, 1 means change was spread evenly across every version.
	ChurnEntropy float64
}

// Summarize aggregates per-version deltas into a file-level summary.
func Summarize(deltas []VersionDelta) Summary {
	s := Summary{TotalVersions: len(deltas)}
	times := make([]time.Time, 0, len(deltas))
	for _, d := range deltas {
		s.LinesAdded += d.LinesAdded
		s.LinesDeleted += d.LinesDeleted
		times = append(times, d.Entry.Commit.When)
	}
	s.BurstScore = burstScore(times, defaultBurstWindowDays)
	s.ChurnEntropy = churnEntropy(deltas)
	return s
}

// burstScore returns the proportion of versions inside the densest
// window of the given width, using a two-pointer sliding window.
func burstScore(times []time.Time, windowDays int) float64 {
	if len(times) == 0 {
		return 0.0
	}
	if len(times) == 1 {
		// A single version is maximally concentrated.
		return 1.0
	}
	if windowDays <= 0 {
		windowDays = defaultBurstWindowDays
	}

	// Deltas arrive oldest first, so this sort is normally a no-op.
	if !sort.SliceIsSorted(times, func(i, j int) bool { return times[i].Before(times[j]) }) {
		sorted := make([]time.Time, len(times))
		copy(sorted, times)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
		times = sorted
	}

	window := time.Duration(windowDays) * 24 * time.Hour
	maxInWindow := 1
	left := 0
	for right := 0; right < len(times); right++ {
		for times[right].Sub(times[left]) > window {
			left++
		}
		if count := right - left + 1; count > maxInWindow {
			maxInWindow = count
		}
	}
	return float64(maxInWindow) / float64(len(times))
}

// churnEntropy returns the normalized Shannon entropy of line churn
// across versions. Missing and binary versions carry zero churn and
// contribute nothing to the distribution.
func churnEntropy(deltas []VersionDelta) float64 {
	if len(deltas) < 2 {
		return 0.0
	}

	totalChurn := 0
	for _, d := range deltas {
		totalChurn += d.Churn()
	}
	if totalChurn == 0 {
		return 0.0
	}

	// Shannon entropy: -sum(p_i * log2(p_i)), normalized by the
	// maximum possible entropy log2(n) so the result lands in [0, 1].
	entropy := 0.0
	for _, d := range deltas {
		if churn := d.Churn(); churn > 0 {
			p := float64(churn) / float64(totalChurn)
			entropy -= p * math.Log2(p)
		}
	}
	maxEntropy := math.Log2(float64(len(deltas)))
	if maxEntropy <= 0 {
		return 0.0
	}

	normalized := entropy / maxEntropy
	if normalized < 0 {
		return 0.0
	}
	if normalized > 1 {
		return 1.0
	}
	return normalized
}
