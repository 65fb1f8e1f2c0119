package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

type demoPost struct {
	author string
	body   string
	// reactor name -> emotion
	reactions [][2]string
}

var demoUsers = []string{"Ana", "Beto", "Carla", "Diego", "Elena"}

var demoPosts = []demoPost{
	{author: "Ana", body: "Great match last night, the second half was unreal!", reactions: [][2]string{{"Beto", "joy"}, {"Carla", "joy"}, {"Diego", "surprise"}}},
	{author: "Ana", body: "Morning run done: 10k under 50 minutes.", reactions: [][2]string{{"Elena", "love"}}},
	{author: "Beto", body: "Who else is watching the final on Sunday?", reactions: [][2]string{{"Ana", "joy"}, {"Carla", "love"}}},
	{author: "Beto", body: "Referee decisions today were questionable.", reactions: [][2]string{{"Diego", "anger"}, {"Elena", "sadness"}, {"Ana", "anger"}}},
	{author: "Beto", body: "New training plan starts tomorrow.", reactions: nil},
	{author: "Beto", body: "Stadium tour photos are up.", reactions: [][2]string{{"Carla", "joy"}}},
	{author: "Beto", body: "Injury update: back on the pitch next week.", reactions: [][2]string{{"Ana", "love"}, {"Diego", "joy"}}},
	{author: "Carla", body: "Cycling through the mountains this weekend.", reactions: [][2]string{{"Beto", "surprise"}}},
	{author: "Diego", body: "Season stats are finally out.", reactions: [][2]string{{"Ana", "joy"}, {"Beto", "joy"}, {"Carla", "joy"}, {"Elena", "surprise"}}},
}

// Seed inserts the demo dataset when the store holds no users. It reports
// whether anything was written.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	n, err := s.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	users, posts, reactions, err := demoDataset(time.Now().UTC())
	if err != nil {
		return false, err
	}
	if err := s.Insert(ctx, users, posts, reactions); err != nil {
		return false, fmt.Errorf("seeding demo data: %w", err)
	}
	return true, nil
}

func demoDataset(base time.Time) ([]*models.User, []*models.Post, []*models.Reaction, error) {
	step := 0
	next := func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	users := make([]*models.User, 0, len(demoUsers))
	byName := make(map[string]*models.User, len(demoUsers))
	for _, name := range demoUsers {
		u := &models.User{ID: uuid.New(), Name: name, CreatedAt: next()}
		users = append(users, u)
		byName[name] = u
	}

	var posts []*models.Post
	var reactions []*models.Reaction
	for _, dp := range demoPosts {
		owner, ok := byName[dp.author]
		if !ok {
			return nil, nil, nil, fmt.Errorf("demo post author %q is not a demo user", dp.author)
		}
		p := &models.Post{ID: uuid.New(), UserID: owner.ID, Body: dp.body, CreatedAt: next()}
		posts = append(posts, p)
		for _, pair := range dp.reactions {
			author, ok := byName[pair[0]]
			if !ok {
				return nil, nil, nil, fmt.Errorf("demo reactor %q is not a demo user", pair[0])
			}
			reactions = append(reactions, &models.Reaction{
				ID:        uuid.New(),
				UserID:    author.ID,
				PostID:    p.ID,
				Emotion:   pair[1],
				CreatedAt: next(),
			})
		}
	}
	return users, posts, reactions, nil
}
