package fakebackend

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

type teamBody struct {
	TeamKey         string `json:"teamKey"`
	TeamName        string `json:"teamName"`
	TeamDescription string `json:"teamDescription"`
}

func rawString(value string) json.RawMessage {
	raw, _ := json.Marshal(value)
	return raw
}

func rawEquals(raw json.RawMessage, value string) bool {
	var decoded string
	return json.Unmarshal(raw, &decoded) == nil && decoded == value
}

func newTeamKey() string {
	key := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TM-" + key[:teamKeyRandLength]
}

func isMember(team *taskmate.Team, userID string) bool {
	for _, member := range team.Members {
		if rawEquals(member, userID) {
			return true
		}
	}
	return false
}

func (s *Server) createTeam(c *gin.Context) {
	var body teamBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.TeamName) == "" {
		fail(c, http.StatusBadRequest, "Team name is required")
		return
	}
	userID := callerID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	team := &taskmate.Team{
		ID:              uuid.NewString(),
		TeamName:        strings.TrimSpace(body.TeamName),
		TeamDescription: strings.TrimSpace(body.TeamDescription),
		TeamKey:         newTeamKey(),
		Admin:           rawString(userID),
		Members:         []json.RawMessage{rawString(userID)},
		CreatedAt:       s.cfg.Now().UTC().Format(time.RFC3339),
	}
	s.teams[team.TeamKey] = team
	s.order = append(s.order, team.TeamKey)
	reply(c, http.StatusCreated, statusSuccess, "Team created successfully", team)
}

// adminTeamLocked returns the team the caller administers, writing the
// failure reply when there is none.
func (s *Server) adminTeamLocked(c *gin.Context, teamKey string) (*taskmate.Team, bool) {
	team, exists := s.teams[strings.TrimSpace(teamKey)]
	if !exists {
		fail(c, http.StatusNotFound, "Team not found")
		return nil, false
	}
	if !rawEquals(team.Admin, callerID(c)) {
		fail(c, http.StatusForbidden, "Only the team admin can modify this team")
		return nil, false
	}
	return team, true
}

func (s *Server) updateTeam(c *gin.Context) {
	var body teamBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.TeamName) == "" {
		fail(c, http.StatusBadRequest, "Team name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	team, found := s.adminTeamLocked(c, body.TeamKey)
	if !found {
		return
	}
	team.TeamName = strings.TrimSpace(body.TeamName)
	team.TeamDescription = strings.TrimSpace(body.TeamDescription)
	ok(c, "Team updated successfully", team)
}

func (s *Server) deleteTeam(c *gin.Context) {
	var body teamBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Team key is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	team, found := s.adminTeamLocked(c, body.TeamKey)
	if !found {
		return
	}
	delete(s.teams, team.TeamKey)
	for i, key := range s.order {
		if key == team.TeamKey {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	ok(c, "Team deleted successfully", nil)
}

func (s *Server) searchTeam(c *gin.Context) {
	var body teamBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.TeamKey) == "" {
		fail(c, http.StatusBadRequest, "Team key is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	team, exists := s.teams[strings.TrimSpace(body.TeamKey)]
	if !exists {
		fail(c, http.StatusNotFound, "Team not found")
		return
	}
	ok(c, "Team found", team)
}

func (s *Server) listAdminTeams(c *gin.Context) {
	userID := callerID(c)
	ok(c, "Admin teams", s.filterTeams(func(team *taskmate.Team) bool {
		return rawEquals(team.Admin, userID)
	}))
}

func (s *Server) listMemberTeams(c *gin.Context) {
	userID := callerID(c)
	ok(c, "Member teams", s.filterTeams(func(team *taskmate.Team) bool {
		return !rawEquals(team.Admin, userID) && isMember(team, userID)
	}))
}

// filterTeams returns matching teams newest first.
func (s *Server) filterTeams(match func(*taskmate.Team) bool) []taskmate.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []taskmate.Team{}
	for i := len(s.order) - 1; i >= 0; i-- {
		team := s.teams[s.order[i]]
		if team != nil && match(team) {
			out = append(out, *team)
		}
	}
	return out
}
