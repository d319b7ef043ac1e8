package public

import webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"

func landingView(signedIn bool) webtemplates.LandingView {
	return webtemplates.LandingView{
		SignedIn: signedIn,
		Features: []webtemplates.LandingFeature{
			{Icon: "users", TitleKey: "landing.features.team_management.title", BodyKey: "landing.features.team_management.body"},
			{Icon: "check", TitleKey: "landing.features.task_tracking.title", BodyKey: "landing.features.task_tracking.body"},
			{Icon: "shield", TitleKey: "landing.features.secure.title", BodyKey: "landing.features.secure.body"},
			{Icon: "zap", TitleKey: "landing.features.fast.title", BodyKey: "landing.features.fast.body"},
			{Icon: "globe", TitleKey: "landing.features.anywhere.title", BodyKey: "landing.features.anywhere.body"},
			{Icon: "layers", TitleKey: "landing.features.organization.title", BodyKey: "landing.features.organization.body"},
		},
		Stats: []webtemplates.LandingStat{
			{Value: "10K+", LabelKey: "landing.stats.users"},
			{Value: "50K+", LabelKey: "landing.stats.tasks"},
			{Value: "2K+", LabelKey: "landing.stats.teams"},
			{Value: "99.9%", LabelKey: "landing.stats.uptime"},
		},
		Steps: []webtemplates.LandingStep{
			{Number: 1, TitleKey: "landing.steps.create_account.title", BodyKey: "landing.steps.create_account.body"},
			{Number: 2, TitleKey: "landing.steps.build_team.title", BodyKey: "landing.steps.build_team.body"},
			{Number: 3, TitleKey: "landing.steps.track_deliver.title", BodyKey: "landing.steps.track_deliver.body"},
		},
		Testimonials: []webtemplates.LandingTestimonial{
			{Name: "Sarah Chen", Initials: "SC", RoleKey: "landing.testimonials.sarah.role", QuoteKey: "landing.testimonials.sarah.quote"},
			{Name: "Alex Rivera", Initials: "AR", RoleKey: "landing.testimonials.alex.role", QuoteKey: "landing.testimonials.alex.quote"},
			{Name: "Priya Sharma", Initials: "PS", RoleKey: "landing.testimonials.priya.role", QuoteKey: "landing.testimonials.priya.quote"},
		},
		FAQ: []webtemplates.LandingQuestion{
			{QuestionKey: "landing.faq.free.question", AnswerKey: "landing.faq.free.answer"},
			{QuestionKey: "landing.faq.invite.question", AnswerKey: "landing.faq.invite.answer"},
			{QuestionKey: "landing.faq.security.question", AnswerKey: "landing.faq.security.answer"},
			{QuestionKey: "landing.faq.reset.question", AnswerKey: "landing.faq.reset.answer"},
		},
	}
}
