package planner

// Persisted key names. They match what earlier builds wrote so existing data
// files keep working.
const (
	keyUserName           = "study_planner_user"
	keyLoggedIn           = "study_planner_logged_in"
	keyTasks              = "study_planner_tasks"
	keyOnboardingComplete = "onboarding_complete"
	keyAccountExists      = "study_planner_account_exists"
	keyAccountEmail       = "study_planner_email"
	keyAccountPassword    = "study_planner_pass"

	flagTrue = "true"
)
