package planner

import (
	"fmt"
	"strings"
)

// View is the single active screen.
type View int

const (
	ViewSplash View = iota
	ViewOnboarding
	ViewAuth
	ViewDashboard
	ViewAddTask
	ViewProgress
	ViewSettings
	ViewFocus

	// ViewCount is the number of views; keep it last.
	ViewCount
)

var viewNames = [ViewCount]string{
	ViewSplash:     "SPLASH",
	ViewOnboarding: "ONBOARDING",
	ViewAuth:       "AUTH",
	ViewDashboard:  "DASHBOARD",
	ViewAddTask:    "ADD_TASK",
	ViewProgress:   "PROGRESS",
	ViewSettings:   "SETTINGS",
	ViewFocus:      "FOCUS",
}

func (v View) Valid() bool {
	return v >= 0 && v < ViewCount
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

func ParseView(s string) (View, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range viewNames {
		if name == s {
			return View(i), nil
		}
	}
	return ViewDashboard, fmt.Errorf("unknown view %q", s)
}

// Trigger is a navigation event fed to the controller.
type Trigger int

const (
	TriggerSplashElapsed Trigger = iota
	TriggerOnboardingConfirmed
	TriggerLoginSucceeded
	TriggerSignedUp
	TriggerAddTask
	TriggerTaskSaved
	TriggerCancel
	TriggerOpenProgress
	TriggerOpenSettings
	TriggerOpenFocus
	TriggerBack
)

func (t Trigger) String() string {
	switch t {
	case TriggerSplashElapsed:
		return "splash-elapsed"
	case TriggerOnboardingConfirmed:
		return "onboarding-confirmed"
	case TriggerLoginSucceeded:
		return "login-succeeded"
	case TriggerSignedUp:
		return "signed-up"
	case TriggerAddTask:
		return "add-task"
	case TriggerTaskSaved:
		return "task-saved"
	case TriggerCancel:
		return "cancel"
	case TriggerOpenProgress:
		return "open-progress"
	case TriggerOpenSettings:
		return "open-settings"
	case TriggerOpenFocus:
		return "open-focus"
	case TriggerBack:
		return "back"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}
