package analytics

import (
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

type userSpec struct {
	name      string
	posts     int
	reactions []string
}

// buildSnapshot creates users with the given post counts. Every reaction a
// user authors targets the first post in the snapshot.
func buildSnapshot(t *testing.T, specs ...userSpec) *models.Snapshot {
	t.Helper()

	var users []*models.User
	var posts []*models.Post
	for _, spec := range specs {
		u := &models.User{ID: uuid.New(), Name: spec.name}
		users = append(users, u)
		for i := 0; i < spec.posts; i++ {
			posts = append(posts, &models.Post{ID: uuid.New(), UserID: u.ID, Body: spec.name + " post"})
		}
	}

	var reactions []*models.Reaction
	for i, spec := range specs {
		for _, emotion := range spec.reactions {
			if len(posts) == 0 {
				t.Fatalf("reactions need at least one post in the snapshot")
			}
			reactions = append(reactions, &models.Reaction{
				ID:      uuid.New(),
				UserID:  users[i].ID,
				PostID:  posts[0].ID,
				Emotion: emotion,
			})
		}
	}

	snap, err := models.NewSnapshot(users, posts, reactions)
	if err != nil {
		t.Fatalf("building snapshot: %v", err)
	}
	return snap
}

func repeat(emotion string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = emotion
	}
	return out
}

func names(rows []MetricRow) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.User.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
