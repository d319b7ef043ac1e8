package teams

import (
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func mapTeamCard(team taskmate.Team, canManage bool) webtemplates.TeamCard {
	return webtemplates.TeamCard{
		Key:         team.TeamKey,
		Name:        team.TeamName,
		Description: team.TeamDescription,
		CreatedAt:   team.CreatedAt,
		MemberCount: team.MemberCount(),
		EditURL:     routepath.TeamEdit(team.TeamKey),
		DeleteURL:   routepath.TeamDelete(team.TeamKey),
		CanManage:   canManage,
	}
}

func mapTeamCards(teams []taskmate.Team, canManage bool) []webtemplates.TeamCard {
	cards := make([]webtemplates.TeamCard, 0, len(teams))
	for _, team := range teams {
		cards = append(cards, mapTeamCard(team, canManage))
	}
	return cards
}

func mapTeamsView(l listing, result searchResult, loc webtemplates.Localizer) webtemplates.TeamsView {
	view := webtemplates.TeamsView{
		AdminTeams:  mapTeamCards(l.Admin, true),
		MemberTeams: mapTeamCards(l.Member, false),
		SearchKey:   result.Key,
	}
	if l.Incomplete {
		view.ListError = webtemplates.T(loc, "app.teams.list_unavailable")
	}
	if result.Team != nil {
		card := mapTeamCard(*result.Team, l.manages(result.Team.TeamKey))
		view.SearchResult = &card
	}
	if result.MessageKey != "" {
		view.SearchMessage = webtemplates.T(loc, result.MessageKey)
	}
	return view
}
