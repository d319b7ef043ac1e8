package profile

import (
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func mapProfileView(user taskmate.User) webtemplates.ProfileView {
	return webtemplates.ProfileView{
		Card: webtemplates.ProfileCard{
			Name:        user.Name,
			Email:       user.Email,
			Designation: user.Designation,
			Role:        user.Role,
			Bio:         user.Bio,
			Location:    user.Location,
			Website:     user.Website,
			Initials:    user.Initials(),
			AvatarURL:   user.Avatar,
			CreatedAt:   user.CreatedAt,
		},
		Form: webtemplates.ProfileForm{
			Name:        user.Name,
			Designation: user.Designation,
			Bio:         user.Bio,
			Location:    user.Location,
			Website:     user.Website,
		},
	}
}
