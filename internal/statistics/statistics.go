// Package statistics summarises a sample of integer observations such as
// hand values.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Sample accumulates observations. The zero value is an empty sample.
type Sample struct {
	Count  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Kept in insertion order for median/percentiles
	Min    int
	Max    int
}

// Add records one observation
func (s *Sample) Add(v int) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	f := float64(v)
	s.Count++
	s.Sum += f
	s.SumSq += f * f
	s.Values = append(s.Values, f)
}

// Merge appends every observation of o, preserving o's order after s's.
func (s *Sample) Merge(o Sample) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 || o.Min < s.Min {
		s.Min = o.Min
	}
	if s.Count == 0 || o.Max > s.Max {
		s.Max = o.Max
	}
	s.Count += o.Count
	s.Sum += o.Sum
	s.SumSq += o.SumSq
	s.Values = append(s.Values, o.Values...)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation
func (s *Sample) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at p (0.0 to 1.0), interpolating between
// neighbouring observations.
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the running totals agree with the stored observations
func (s *Sample) Validate() error {
	if len(s.Values) != s.Count {
		return fmt.Errorf("values length (%d) does not match count (%d)", len(s.Values), s.Count)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6 {
		return fmt.Errorf("sum mismatch: running %.6f, values %.6f", s.Sum, sum)
	}
	if s.Count > 0 && s.Min > s.Max {
		return fmt.Errorf("min %d exceeds max %d", s.Min, s.Max)
	}
	return nil
}
