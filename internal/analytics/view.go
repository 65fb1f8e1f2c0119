package analytics

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

var ErrUnknownMode = errors.New("unknown chart mode")

// Mode is the closed set of dashboard charts.
type Mode int

const (
	ModeBarByUser Mode = iota
	ModeTopKHorizontalBar
	ModeScatter
	ModeHeatmap
	ModePieByEmotion
)

var modeNames = [...]string{
	ModeBarByUser:         "bar-by-user",
	ModeTopKHorizontalBar: "top-k",
	ModeScatter:           "scatter",
	ModeHeatmap:           "heatmap",
	ModePieByEmotion:      "pie-by-emotion",
}

// Modes lists every chart mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeBarByUser, ModeTopKHorizontalBar, ModeScatter, ModeHeatmap, ModePieByEmotion}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type ChartKind string

const (
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal-bar"
	KindScatter       ChartKind = "scatter"
	KindHeatmap       ChartKind = "heatmap"
	KindPie           ChartKind = "pie"
)

type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSpec describes a chart without any knowledge of how it is drawn.
// Series data is aligned index-by-index with AxisData.
type ChartSpec struct {
	Kind     ChartKind `json:"kind"`
	Title    string    `json:"title"`
	XAxis    string    `json:"xAxis,omitempty"`
	YAxis    string    `json:"yAxis,omitempty"`
	AxisData []string  `json:"axisData"`
	Series   []Series  `json:"series"`
	Labels   []string  `json:"labels"`
	Colors   []string  `json:"colors,omitempty"`
}

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildView computes the aggregations a chart mode needs and returns its
// specification. A nil snapshot is treated as empty.
func BuildView(mode Mode, snap *models.Snapshot, opts ...Option) (ChartSpec, error) {
	cfg := applyOptions(opts)
	if snap == nil {
		snap = &models.Snapshot{}
	}

	var spec ChartSpec
	switch mode {
	case ModeBarByUser:
		spec = barByUser(Aggregate(snap.Users))
	case ModeTopKHorizontalBar:
		spec = topKBar(Aggregate(snap.Users), cfg.rankMetric, cfg.topK)
	case ModeScatter:
		spec = scatter(Aggregate(snap.Users))
	case ModeHeatmap:
		spec = heatmap(Aggregate(snap.Users))
	case ModePieByEmotion:
		spec = pieByEmotion(EmotionDistribution(snap.Reactions))
	default:
		return ChartSpec{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	// Pie slices are colored per category, everything else per series.
	if spec.Kind == KindPie {
		spec.Colors = assignColors(len(spec.AxisData))
	} else {
		spec.Colors = assignColors(len(spec.Series))
	}
	return spec, nil
}

func barByUser(m Metrics) ChartSpec {
	names := userNames(m.PerUser)
	return ChartSpec{
		Kind:     KindBar,
		Title:    "Posts and reactions by user",
		XAxis:    "User",
		YAxis:    "Count",
		AxisData: names,
		Series: []Series{
			{Name: MetricPosts.Title(), Data: Values(m.PerUser, MetricPosts)},
			{Name: MetricReactions.Title(), Data: Values(m.PerUser, MetricReactions)},
		},
		Labels: names,
	}
}

func topKBar(m Metrics, metric Metric, k int) ChartSpec {
	top := TopK(m.PerUser, metric, k)
	names := userNames(top)
	return ChartSpec{
		Kind:     KindHorizontalBar,
		Title:    fmt.Sprintf("Top %d users by %s", k, metric),
		XAxis:    metric.Title(),
		YAxis:    "User",
		AxisData: names,
		Series:   []Series{{Name: metric.Title(), Data: Values(top, metric)}},
		Labels:   names,
	}
}

func scatter(m Metrics) ChartSpec {
	names := userNames(m.PerUser)
	return ChartSpec{
		Kind:     KindScatter,
		Title:    "Posts vs reactions",
		XAxis:    MetricPosts.Title(),
		YAxis:    MetricReactions.Title(),
		AxisData: names,
		Series: []Series{
			{Name: MetricPosts.Title(), Data: Values(m.PerUser, MetricPosts)},
			{Name: MetricReactions.Title(), Data: Values(m.PerUser, MetricReactions)},
		},
		Labels: names,
	}
}

// heatmap bins post counts into rows and reaction counts into columns. The
// axis captions carry the bin ranges so Low/Moderate/High can be read back.
func heatmap(m Metrics) ChartSpec {
	posts := Values(m.PerUser, MetricPosts)
	reactions := Values(m.PerUser, MetricReactions)
	table := CrossTab(Bin3(posts), Bin3(reactions))

	series := make([]Series, len(Labels))
	for i, l := range Labels {
		series[i] = Series{Name: l.String(), Data: make([]float64, 0, len(Labels))}
	}
	for _, c := range table.Cells() {
		series[c.Row].Data = append(series[c.Row].Data, float64(c.Count))
	}

	return ChartSpec{
		Kind:     KindHeatmap,
		Title:    "Post activity vs reaction activity",
		XAxis:    binCaption(MetricReactions.Title(), reactions),
		YAxis:    binCaption(MetricPosts.Title(), posts),
		AxisData: LabelNames(),
		Series:   series,
		Labels:   LabelNames(),
	}
}

// binCaption renders "Title (a-b / b-c / c-d)" for the three bins of values.
// Without a spread there is nothing to cut, so only the title is returned.
func binCaption(title string, values []float64) string {
	edges, ok := BinBounds(values)
	if !ok {
		return title
	}
	return fmt.Sprintf("%s (%s-%s / %s-%s / %s-%s)", title,
		formatEdge(edges[0]), formatEdge(edges[1]),
		formatEdge(edges[1]), formatEdge(edges[2]),
		formatEdge(edges[2]), formatEdge(edges[3]))
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func pieByEmotion(dist []EmotionCount) ChartSpec {
	names := make([]string, 0, len(dist))
	data := make([]float64, 0, len(dist))
	for _, ec := range dist {
		names = append(names, ec.Emotion)
		data = append(data, float64(ec.Count))
	}
	return ChartSpec{
		Kind:     KindPie,
		Title:    "Reactions by emotion",
		AxisData: names,
		Series:   []Series{{Name: MetricReactions.Title(), Data: data}},
		Labels:   names,
	}
}

func userNames(rows []MetricRow) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.User.Name)
	}
	return names
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
