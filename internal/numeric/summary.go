package numeric

import (
	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics reported alongside test results
// and in exported workbooks.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Summarize computes descriptive statistics for a sample. Errors from the
// underlying library only occur on empty input, which maps to a zero Summary.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return Summary{
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}

// Percentile exposes the library percentile used for bootstrap intervals.
// Returns 0 on empty input or out-of-range percent.
func Percentile(data []float64, percent float64) float64 {
	v, err := stats.Percentile(data, percent)
	if err != nil {
		return 0
	}
	return v
}
