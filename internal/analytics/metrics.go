package analytics

import "github.com/HammerMeetNail/socialexplorer/internal/models"

// MetricRow holds the per-user counts for one computation pass.
type MetricRow struct {
	User          *models.User
	PostCount     int
	ReactionCount int
}

type Totals struct {
	Posts     int `json:"posts"`
	Reactions int `json:"reactions"`
	Users     int `json:"users"`
}

// Metrics is the result of Aggregate. MostActiveUser is nil when there are no
// users.
type Metrics struct {
	PerUser                 []MetricRow
	Totals                  Totals
	AveragePostsPerUser     float64
	AverageReactionsPerUser float64
	MostActiveUser          *models.User
}

// Aggregate computes per-user and global counts. ReactionCount is the number
// of reactions a user authored. The most active user is the one with the most
// posts; ties go to whoever appears first.
func Aggregate(users []*models.User) Metrics {
	m := Metrics{PerUser: make([]MetricRow, 0, len(users))}

	best := -1
	for _, u := range users {
		row := MetricRow{
			User:          u,
			PostCount:     len(u.Posts),
			ReactionCount: len(u.Reactions),
		}
		m.PerUser = append(m.PerUser, row)
		m.Totals.Posts += row.PostCount
		m.Totals.Reactions += row.ReactionCount

		if row.PostCount > best {
			best = row.PostCount
			m.MostActiveUser = u
		}
	}
	m.Totals.Users = len(users)

	m.AveragePostsPerUser = average(m.Totals.Posts, m.Totals.Users)
	m.AverageReactionsPerUser = average(m.Totals.Reactions, m.Totals.Users)
	return m
}

// ReactionsReceived counts the reactions targeting a post.
func ReactionsReceived(post *models.Post) int {
	if post == nil {
		return 0
	}
	return len(post.Reactions)
}

func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
