package taskmate

import (
	"encoding/json"
	"strings"
)

// User is the backend profile record.
type User struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation,omitempty"`
	Role        string `json:"role,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Initials returns up to two uppercase initials from the display name,
// falling back to the email.
func (u User) Initials() string {
	source := strings.TrimSpace(u.Name)
	if source == "" {
		source = strings.TrimSpace(u.Email)
	}
	var out []rune
	for _, word := range strings.Fields(source) {
		for _, r := range word {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return strings.ToUpper(string(out))
}

// Team is the backend team record. Admin and Members are kept raw because the
// backend sends either ids or populated user objects.
type Team struct {
	ID              string            `json:"_id"`
	TeamName        string            `json:"teamName"`
	TeamDescription string            `json:"teamDescription,omitempty"`
	TeamKey         string            `json:"teamKey"`
	Admin           json.RawMessage   `json:"admin,omitempty"`
	Members         []json.RawMessage `json:"members,omitempty"`
	CreatedAt       string            `json:"createdAt,omitempty"`
}

// MemberCount returns the number of listed members.
func (t Team) MemberCount() int {
	return len(t.Members)
}

// SignupInput is the registration payload.
type SignupInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
}

// TeamInput is the create/update payload. TeamKey is ignored on create.
type TeamInput struct {
	TeamKey         string `json:"teamKey,omitempty"`
	TeamName        string `json:"teamName"`
	TeamDescription string `json:"teamDescription"`
}

// ProfileInput is the profile update payload.
type ProfileInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Avatar      string `json:"avatar"`
}
