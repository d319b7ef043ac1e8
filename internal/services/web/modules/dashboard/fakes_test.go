package dashboard

import (
	"context"

	"github.com/taskmate/taskmate-web/internal/taskmate"
)

type fakeTeamSource struct {
	teams []taskmate.Team
	err   error

	userID      string
	creds       taskmate.Credentials
	invalidated []string
}

func (f *fakeTeamSource) Invalidate(_ context.Context, userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func (f *fakeTeamSource) AdminTeams(_ context.Context, userID string, creds taskmate.Credentials) ([]taskmate.Team, error) {
	f.userID = userID
	f.creds = creds
	return f.teams, f.err
}

func teams(n int) []taskmate.Team {
	out := make([]taskmate.Team, 0, n)
	for i := range n {
		key := string(rune('a' + i))
		out = append(out, taskmate.Team{ID: "t-" + key, TeamKey: "key-" + key, TeamName: "Team " + key})
	}
	return out
}
