package templates

import "github.com/a-h/templ"

// FieldErrors maps form field names to localization keys.
type FieldErrors map[string]string

// LandingFeature is one feature card on the landing page.
type LandingFeature struct {
	Icon     string
	TitleKey string
	BodyKey  string
}

// LandingStat is one headline number on the landing page.
type LandingStat struct {
	Value    string
	LabelKey string
}

// LandingStep is one "how it works" step.
type LandingStep struct {
	Number   int
	TitleKey string
	BodyKey  string
}

// LandingTestimonial is one customer quote.
type LandingTestimonial struct {
	Name     string
	Initials string
	RoleKey  string
	QuoteKey string
}

// LandingQuestion is one FAQ entry.
type LandingQuestion struct {
	QuestionKey string
	AnswerKey   string
}

// LandingView is the landing page content.
type LandingView struct {
	SignedIn     bool
	Features     []LandingFeature
	Stats        []LandingStat
	Steps        []LandingStep
	Testimonials []LandingTestimonial
	FAQ          []LandingQuestion
}

// LoginView is the sign-in form state.
type LoginView struct {
	Email       string
	Error       string
	FieldErrors FieldErrors
}

// SignupView is the registration form state.
type SignupView struct {
	Name        string
	Email       string
	Designation string
	Error       string
	FieldErrors FieldErrors
}

// ForgotStep numbers the password reset wizard steps.
type ForgotStep int

const (
	ForgotStepEmail ForgotStep = iota + 1
	ForgotStepOTP
	ForgotStepPassword
	ForgotStepDone
)

// ForgotView is the password reset wizard state.
type ForgotView struct {
	Step        ForgotStep
	Email       string
	Token       string
	Error       string
	FieldErrors FieldErrors
}

// Steps lists the wizard steps for the indicator.
func (v ForgotView) Steps() []ForgotIndicator {
	keys := []string{"auth.forgot.step_email", "auth.forgot.step_otp", "auth.forgot.step_password", "auth.forgot.step_done"}
	out := make([]ForgotIndicator, 0, len(keys))
	for idx, key := range keys {
		step := ForgotStep(idx + 1)
		out = append(out, ForgotIndicator{
			Number:   idx + 1,
			LabelKey: key,
			Current:  step == v.Step,
			Complete: step < v.Step,
		})
	}
	return out
}

// ForgotIndicator is one entry in the wizard step indicator.
type ForgotIndicator struct {
	Number   int
	LabelKey string
	Current  bool
	Complete bool
}

// TeamCard is one team in lists and search results.
type TeamCard struct {
	Key         string
	Name        string
	Description string
	CreatedAt   string
	MemberCount int
	EditURL     string
	DeleteURL   string
	CanManage   bool
}

// DashboardView is the dashboard overview.
type DashboardView struct {
	Name        string
	TotalTeams  int
	RecentTeams []TeamCard
	Unavailable bool
}

// TeamsView is the teams page.
type TeamsView struct {
	AdminTeams        []TeamCard
	MemberTeams       []TeamCard
	SearchKey         string
	SearchResult      *TeamCard
	SearchMessage     string
	ListError         string
	CreateName        string
	CreateDescription string
	CreateError       string
	FieldErrors       FieldErrors
}

// TeamEditView is the team edit form.
type TeamEditView struct {
	Team        TeamCard
	Name        string
	Description string
	Error       string
	FieldErrors FieldErrors
}

// ProfileCard is the read-only profile summary.
type ProfileCard struct {
	Name        string
	Email       string
	Designation string
	Role        string
	Bio         string
	Location    string
	Website     string
	Initials    string
	AvatarURL   string
	CreatedAt   string
}

// ProfileForm is the editable profile fields.
type ProfileForm struct {
	Name        string
	Designation string
	Bio         string
	Location    string
	Website     string
}

// ProfileView is the profile page.
type ProfileView struct {
	Card                ProfileCard
	Form                ProfileForm
	Error               string
	FieldErrors         FieldErrors
	AvatarError         string
	PasswordError       string
	PasswordFieldErrors FieldErrors
}

// LandingPage renders the marketing landing page.
func LandingPage(loc Localizer, view LandingView) templ.Component {
	return View("landing", loc, view)
}

// LoginPage renders the sign-in form.
func LoginPage(loc Localizer, view LoginView) templ.Component {
	return View("login", loc, view)
}

// SignupPage renders the registration form.
func SignupPage(loc Localizer, view SignupView) templ.Component {
	return View("signup", loc, view)
}

// ForgotPasswordPage renders the current password reset step.
func ForgotPasswordPage(loc Localizer, view ForgotView) templ.Component {
	return View("forgot_password", loc, view)
}

// DashboardPage renders the dashboard overview.
func DashboardPage(loc Localizer, view DashboardView) templ.Component {
	return View("dashboard", loc, view)
}

// TeamsPage renders the teams list, search and create form.
func TeamsPage(loc Localizer, view TeamsView) templ.Component {
	return View("teams", loc, view)
}

// TeamEditPage renders the team edit form.
func TeamEditPage(loc Localizer, view TeamEditView) templ.Component {
	return View("team_edit", loc, view)
}

// ProfilePage renders the profile card and forms.
func ProfilePage(loc Localizer, view ProfileView) templ.Component {
	return View("profile", loc, view)
}
