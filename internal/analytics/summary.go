package analytics

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

// Summary is the headline panel of the dashboard.
type Summary struct {
	Totals                  Totals  `json:"totals"`
	AveragePostsPerUser     float64 `json:"average_posts_per_user"`
	AverageReactionsPerUser float64 `json:"average_reactions_per_user"`
	MostActiveUser          string  `json:"most_active_user,omitempty"`
	HasMostActive           bool    `json:"has_most_active"`
	EmotionKinds            int     `json:"emotion_kinds"`
}

func Summarize(snap *models.Snapshot) Summary {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	m := Aggregate(snap.Users)

	s := Summary{
		Totals:                  m.Totals,
		AveragePostsPerUser:     m.AveragePostsPerUser,
		AverageReactionsPerUser: m.AverageReactionsPerUser,
		EmotionKinds:            len(EmotionDistribution(snap.Reactions)),
	}
	if m.MostActiveUser != nil {
		s.MostActiveUser = m.MostActiveUser.Name
		s.HasMostActive = true
	}
	return s
}

// Headlines renders the summary as display lines, formatting numbers for
// the given locale.
func (s Summary) Headlines(tag language.Tag) []string {
	p := message.NewPrinter(tag)

	lines := []string{
		p.Sprintf("Users: %d", s.Totals.Users),
		p.Sprintf("Posts: %d", s.Totals.Posts),
		p.Sprintf("Reactions: %d", s.Totals.Reactions),
		p.Sprintf("Average posts per user: %.2f", s.AveragePostsPerUser),
		p.Sprintf("Average reactions per user: %.2f", s.AverageReactionsPerUser),
	}
	if s.HasMostActive {
		lines = append(lines, p.Sprintf("Most active user: %s", s.MostActiveUser))
	} else {
		lines = append(lines, p.Sprintf("No users registered."))
	}
	return lines
}
