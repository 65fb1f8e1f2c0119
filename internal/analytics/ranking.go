package analytics

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which MetricRow count a ranking or binning reads.
type Metric int

const (
	MetricPosts Metric = iota
	MetricReactions
)

func (m Metric) String() string {
	switch m {
	case MetricPosts:
		return "posts"
	case MetricReactions:
		return "reactions"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Title is the human-readable axis caption for the metric.
func (m Metric) Title() string {
	switch m {
	case MetricPosts:
		return "Posts"
	case MetricReactions:
		return "Reactions"
	default:
		return "Value"
	}
}

// Value reads the metric from a row.
func (m Metric) Value(row MetricRow) int {
	switch m {
	case MetricPosts:
		return row.PostCount
	case MetricReactions:
		return row.ReactionCount
	default:
		return 0
	}
}

func ParseMetric(s string) (Metric, error) {
	switch s {
	case "posts":
		return MetricPosts, nil
	case "reactions":
		return MetricReactions, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// TopK returns the k rows with the largest metric, highest first. Rows with
// equal values keep their input order. k <= 0 yields an empty slice. rows is
// left untouched.
func TopK(rows []MetricRow, metric Metric, k int) []MetricRow {
	if k <= 0 {
		return []MetricRow{}
	}

	ranked := make([]MetricRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric.Value(ranked[i]) > metric.Value(ranked[j])
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Values extracts the metric from each row as float64, preserving order.
func Values(rows []MetricRow, metric Metric) []float64 {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = float64(metric.Value(row))
	}
	return values
}
