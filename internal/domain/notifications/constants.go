package notifications

const (
	TypeAssessmentAssigned  = "assessment_assigned"
	TypeAssessmentReminder  = "assessment_reminder"
	TypeLeaderReviewReady   = "leader_review_ready"
	TypeAssessmentFinalized = "assessment_finalized"
	TypeIDPCreated          = "idp_created"
)

// templates maps a template code to the subject and body used for both the
// stored notification and the outgoing email.
var templates = map[string]struct {
	title string
	body  func(vars map[string]string) string
}{
	TypeAssessmentAssigned: {
		title: "Competency assessment assigned",
		body: func(vars map[string]string) string {
			return "You have been assigned a competency assessment in cycle " + vars["cycleName"] + ". Please complete your self rating."
		},
	},
	TypeAssessmentReminder: {
		title: "Self rating reminder",
		body: func(vars map[string]string) string {
			return "Your self rating for cycle " + vars["cycleName"] + " is still pending."
		},
	},
	TypeLeaderReviewReady: {
		title: "Team member ready for leader rating",
		body: func(vars map[string]string) string {
			return "A team member has submitted their self rating and is ready for your review."
		},
	},
	TypeAssessmentFinalized: {
		title: "Assessment finalized",
		body: func(vars map[string]string) string {
			return "Your competency assessment has been finalized. Review your results and development plan."
		},
	},
	TypeIDPCreated: {
		title: "Development plan created",
		body: func(vars map[string]string) string {
			return "A development plan has been generated from your finalized assessment."
		},
	},
}
