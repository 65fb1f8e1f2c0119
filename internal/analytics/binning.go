package analytics

import "fmt"

// Label is an ordered three-way category assigned to a continuous value.
type Label int

const (
	Low Label = iota
	Moderate
	High
)

// Labels lists every label in ascending order. Cross-tab rows and columns
// always follow this order.
var Labels = []Label{Low, Moderate, High}

func (l Label) String() string {
	switch l {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

func (l Label) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l Label) valid() bool {
	return l >= Low && l <= High
}

// LabelNames returns the string form of Labels.
func LabelNames() []string {
	names := make([]string, len(Labels))
	for i, l := range Labels {
		names[i] = l.String()
	}
	return names
}

// BinBounds returns the four cut points min, min+w, min+2w, max of three
// equal-width ranges. ok is false for empty input or when every value is
// equal.
func BinBounds(values []float64) (edges [4]float64, ok bool) {
	if len(values) == 0 {
		return edges, false
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return [4]float64{lo, lo, lo, hi}, false
	}

	width := (hi - lo) / 3
	return [4]float64{lo, lo + width, lo + 2*width, hi}, true
}

// Bin3 labels each value by which third of [min, max] it falls in. A value on
// a boundary goes to the lower bin, except the maximum which is always High.
// When all values are equal every value is labelled Moderate.
func Bin3(values []float64) []Label {
	labels := make([]Label, len(values))

	edges, ok := BinBounds(values)
	if !ok {
		for i := range labels {
			labels[i] = Moderate
		}
		return labels
	}

	for i, v := range values {
		labels[i] = binFor(v, edges)
	}
	return labels
}

func binFor(v float64, edges [4]float64) Label {
	switch {
	case v >= edges[3]:
		return High
	case v <= edges[1]:
		return Low
	case v <= edges[2]:
		return Moderate
	default:
		return High
	}
}
