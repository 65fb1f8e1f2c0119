package analytics

import (
	"sort"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// EmotionDistribution counts reactions per emotion label, most frequent
// first. Labels with equal counts stay in first-seen order.
func EmotionDistribution(reactions []*models.Reaction) []EmotionCount {
	index := make(map[string]int)
	counts := make([]EmotionCount, 0)

	for _, r := range reactions {
		if r == nil {
			continue
		}
		i, ok := index[r.Emotion]
		if !ok {
			i = len(counts)
			index[r.Emotion] = i
			counts = append(counts, EmotionCount{Emotion: r.Emotion})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
