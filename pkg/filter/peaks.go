package filter

import "sort"

// Peak is a single m/z, intensity pair of a consensus spectrum.
type Peak struct {
	MZ        float64
	Intensity float64
}

// PeakConfig holds consensus spectrum peak filtering configuration
type PeakConfig struct {
	TopN            int     // Keep only top N most intense peaks (0 = no limit)
	IntensityCutoff float64 // Keep only peaks above this % of base peak (0 = no cutoff)
}

// Peaks pairs m/z and intensity values. Surplus values of the longer
// slice are dropped.
func Peaks(mz, intens []float64) []Peak {
	n := min(len(mz), len(intens))
	peaks := make([]Peak, n)
	for i := 0; i < n; i++ {
		peaks[i] = Peak{MZ: mz[i], Intensity: intens[i]}
	}
	return peaks
}

// Apply removes zero intensity peaks, applies the configured filters and
// returns the remaining peaks sorted by m/z. The input is not modified.
func (c *PeakConfig) Apply(peaks []Peak) []Peak {
	filtered := RemoveZeroIntensityPeaks(peaks)

	// Apply intensity filters
	if c.IntensityCutoff > 0 {
		filtered = c.filterByIntensity(filtered)
	}

	// Apply top-N filter
	if c.TopN > 0 {
		filtered = c.filterTopN(filtered)
	}

	// Ensure peaks are sorted after all filtering
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].MZ < filtered[j].MZ
	})

	return filtered
}

// filterByIntensity removes peaks below the intensity cutoff percentage
func (c *PeakConfig) filterByIntensity(peaks []Peak) []Peak {
	if len(peaks) == 0 {
		return peaks
	}

	// Find maximum intensity
	maxIntensity := 0.0
	for _, peak := range peaks {
		if peak.Intensity > maxIntensity {
			maxIntensity = peak.Intensity
		}
	}

	// Calculate threshold
	threshold := (c.IntensityCutoff / 100.0) * maxIntensity

	var filtered []Peak
	for _, peak := range peaks {
		if peak.Intensity >= threshold {
			filtered = append(filtered, peak)
		}
	}
	return filtered
}

// filterTopN keeps only the N most intense peaks
func (c *PeakConfig) filterTopN(peaks []Peak) []Peak {
	if len(peaks) <= c.TopN {
		return peaks
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Intensity > peaks[j].Intensity
	})

	return peaks[:c.TopN]
}

// RemoveZeroIntensityPeaks returns a copy of peaks without zero or
// negative intensities.
func RemoveZeroIntensityPeaks(peaks []Peak) []Peak {
	filtered := make([]Peak, 0, len(peaks))
	for _, peak := range peaks {
		if peak.Intensity > 0 {
			filtered = append(filtered, peak)
		}
	}
	return filtered
}
