package teams

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskmate/taskmate-web/internal/taskmate"
)

type fakeGateway struct {
	createResp *taskmate.Response
	createErr  error
	updateResp *taskmate.Response
	updateErr  error
	deleteResp *taskmate.Response
	deleteErr  error
	searchResp *taskmate.Response
	searchErr  error

	created     [2]string
	updated     taskmate.TeamInput
	deletedKey  string
	searchedKey string
	searches    int
}

func (f *fakeGateway) CreateTeam(_ context.Context, _ taskmate.Credentials, name, description string) (*taskmate.Response, error) {
	f.created = [2]string{name, description}
	return f.createResp, f.createErr
}

func (f *fakeGateway) UpdateTeam(_ context.Context, _ taskmate.Credentials, in taskmate.TeamInput) (*taskmate.Response, error) {
	f.updated = in
	return f.updateResp, f.updateErr
}

func (f *fakeGateway) DeleteTeam(_ context.Context, _ taskmate.Credentials, teamKey string) (*taskmate.Response, error) {
	f.deletedKey = teamKey
	return f.deleteResp, f.deleteErr
}

func (f *fakeGateway) SearchTeam(_ context.Context, _ taskmate.Credentials, teamKey string) (*taskmate.Response, error) {
	f.searches++
	f.searchedKey = teamKey
	return f.searchResp, f.searchErr
}

type fakeLists struct {
	admin     []taskmate.Team
	adminErr  error
	member    []taskmate.Team
	memberErr error

	invalidated []string
}

func (f *fakeLists) AdminTeams(context.Context, string, taskmate.Credentials) ([]taskmate.Team, error) {
	return f.admin, f.adminErr
}

func (f *fakeLists) MemberTeams(context.Context, taskmate.Credentials) ([]taskmate.Team, error) {
	return f.member, f.memberErr
}

func (f *fakeLists) Invalidate(_ context.Context, userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func reply(status int, message string, data any) *taskmate.Response {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	envelopeStatus := "success"
	if status >= http.StatusBadRequest {
		envelopeStatus = "failed"
	}
	return &taskmate.Response{
		OK:       status >= 200 && status < 300,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: envelopeStatus, Message: message, Data: raw},
	}
}

var (
	alphaTeam = taskmate.Team{ID: "t1", TeamKey: "alpha-1", TeamName: "Alpha", TeamDescription: "First team"}
	betaTeam  = taskmate.Team{ID: "t2", TeamKey: "beta-2", TeamName: "Beta"}
)
