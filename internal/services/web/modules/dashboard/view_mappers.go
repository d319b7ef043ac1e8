package dashboard

import (
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
)

func mapDashboardView(o overview) webtemplates.DashboardView {
	cards := make([]webtemplates.TeamCard, 0, len(o.RecentTeams))
	for _, team := range o.RecentTeams {
		cards = append(cards, webtemplates.TeamCard{
			Key:         team.TeamKey,
			Name:        team.TeamName,
			Description: team.TeamDescription,
			CreatedAt:   team.CreatedAt,
			MemberCount: team.MemberCount(),
			EditURL:     routepath.TeamEdit(team.TeamKey),
			DeleteURL:   routepath.TeamDelete(team.TeamKey),
		})
	}
	return webtemplates.DashboardView{
		Name:        o.Name,
		TotalTeams:  o.TotalTeams,
		RecentTeams: cards,
		Unavailable: o.Unavailable,
	}
}
