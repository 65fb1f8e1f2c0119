package analytics

// Option tunes BuildView.
type Option func(*viewConfig)

type viewConfig struct {
	topK       int
	rankMetric Metric
}

const DefaultTopK = 5

// WithTopK sets how many users the top-K chart keeps. Values <= 0 produce an
// empty ranking.
func WithTopK(k int) Option {
	return func(c *viewConfig) {
		c.topK = k
	}
}

// WithRankMetric switches the metric the top-K chart ranks by.
func WithRankMetric(m Metric) Option {
	return func(c *viewConfig) {
		c.rankMetric = m
	}
}

func applyOptions(opts []Option) *viewConfig {
	cfg := &viewConfig{
		topK:       DefaultTopK,
		rankMetric: MetricPosts,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
