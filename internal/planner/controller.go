package planner

import (
	"context"
	"fmt"

	"studyplanner/internal/logging"
	"studyplanner/internal/storage"
)

// route picks the destination of an edge; guards live inside the route.
type route func(c *Controller) View

type edge struct {
	from    View
	trigger Trigger
}

func to(v View) route {
	return func(*Controller) View { return v }
}

// transitions is the complete navigation table. A (view, trigger) pair that
// is not listed is illegal.
var transitions = map[edge]route{
	{ViewSplash, TriggerSplashElapsed}:           (*Controller).splashTarget,
	{ViewOnboarding, TriggerOnboardingConfirmed}: to(ViewAuth),
	{ViewAuth, TriggerLoginSucceeded}:            to(ViewDashboard),
	{ViewAuth, TriggerSignedUp}:                  to(ViewAuth),
	{ViewDashboard, TriggerAddTask}:              to(ViewAddTask),
	{ViewAddTask, TriggerTaskSaved}:              to(ViewDashboard),
	{ViewAddTask, TriggerCancel}:                 to(ViewDashboard),
	{ViewDashboard, TriggerOpenProgress}:         to(ViewProgress),
	{ViewDashboard, TriggerOpenSettings}:         to(ViewSettings),
	{ViewDashboard, TriggerOpenFocus}:            to(ViewFocus),
	{ViewProgress, TriggerBack}:                  to(ViewDashboard),
	{ViewSettings, TriggerBack}:                  to(ViewDashboard),
	{ViewFocus, TriggerBack}:                     to(ViewDashboard),
}

var openTriggers = map[View]Trigger{
	ViewProgress: TriggerOpenProgress,
	ViewSettings: TriggerOpenSettings,
	ViewFocus:    TriggerOpenFocus,
}

// Controller is the application state owned by the top of the program: the
// active view plus the stores every view reads from.
type Controller struct {
	view    View
	tasks   *TaskStore
	session *SessionStore
	prefs   Preferences
	log     logging.Logger
}

func NewController(tasks *TaskStore, session *SessionStore, prefs Preferences, log logging.Logger) *Controller {
	return &Controller{
		view:    ViewSplash,
		tasks:   tasks,
		session: session,
		prefs:   prefs,
		log:     log.With("component", "controller"),
	}
}

// Load rehydrates every store from kv and returns a controller on the splash view.
func Load(ctx context.Context, kv storage.KV, prefs Preferences, log logging.Logger) (*Controller, error) {
	session, err := LoadSessionStore(ctx, kv, log)
	if err != nil {
		return nil, err
	}
	tasks := LoadTaskStore(ctx, kv, log)
	return NewController(tasks, session, prefs, log), nil
}

func (c *Controller) View() View {
	if !c.view.Valid() {
		return ViewDashboard
	}
	return c.view
}

func (c *Controller) Tasks() []Task             { return c.tasks.Tasks() }
func (c *Controller) Session() Session          { return c.session.Current() }
func (c *Controller) AccountExists() bool       { return c.session.AccountExists() }
func (c *Controller) Preferences() *Preferences { return &c.prefs }

// Fire applies trigger to the current view.
func (c *Controller) Fire(ctx context.Context, trigger Trigger) error {
	r, err := c.lookup(trigger)
	if err != nil {
		return err
	}
	from := c.view
	c.view = r(c)
	c.log.Debug(ctx, "view transition", "from", from, "trigger", trigger, "to", c.view)
	return nil
}

func (c *Controller) lookup(trigger Trigger) (route, error) {
	if !c.view.Valid() {
		c.view = ViewDashboard
	}
	r, ok := transitions[edge{c.view, trigger}]
	if !ok {
		return nil, fmt.Errorf("%w: %s from %s", ErrIllegalTransition, trigger, c.view)
	}
	return r, nil
}

func (c *Controller) splashTarget() View {
	s := c.session.Current()
	switch {
	case !s.OnboardingComplete:
		return ViewOnboarding
	case !s.LoggedIn:
		return ViewAuth
	default:
		return ViewDashboard
	}
}

// SplashElapsed resolves the splash screen from the session flags.
func (c *Controller) SplashElapsed(ctx context.Context) (View, error) {
	err := c.Fire(ctx, TriggerSplashElapsed)
	return c.View(), err
}

// CompleteOnboarding sets the one-way flag and moves to auth. The flag is
// kept in memory even if persisting it fails.
func (c *Controller) CompleteOnboarding(ctx context.Context) error {
	if _, err := c.lookup(TriggerOnboardingConfirmed); err != nil {
		return err
	}
	persistErr := c.session.CompleteOnboarding(ctx)
	if persistErr != nil {
		c.log.Error(ctx, "onboarding flag not persisted", "err", persistErr)
	}
	if err := c.Fire(ctx, TriggerOnboardingConfirmed); err != nil {
		return err
	}
	return persistErr
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	if _, err := c.lookup(TriggerLoginSucceeded); err != nil {
		return err
	}
	if _, err := c.session.Login(ctx, email, password); err != nil {
		return err
	}
	return c.Fire(ctx, TriggerLoginSucceeded)
}

// SignUp stores the account and stays on auth; the view switches itself to
// the login sub-mode.
func (c *Controller) SignUp(ctx context.Context, name, email, password string) error {
	if _, err := c.lookup(TriggerSignedUp); err != nil {
		return err
	}
	if err := c.session.SignUp(ctx, name, email, password); err != nil {
		return err
	}
	return c.Fire(ctx, TriggerSignedUp)
}

func (c *Controller) OpenAddTask(ctx context.Context) error {
	return c.Fire(ctx, TriggerAddTask)
}

func (c *Controller) CancelAddTask(ctx context.Context) error {
	return c.Fire(ctx, TriggerCancel)
}

// SaveTask creates the task and returns to the dashboard. A rejected input
// leaves both the list and the view unchanged.
func (c *Controller) SaveTask(ctx context.Context, in TaskInput) (Task, error) {
	if _, err := c.lookup(TriggerTaskSaved); err != nil {
		return Task{}, err
	}
	t, err := c.tasks.Create(ctx, in)
	if t.ID == "" {
		return t, err
	}
	if ferr := c.Fire(ctx, TriggerTaskSaved); ferr != nil {
		return t, ferr
	}
	return t, err
}

// Open navigates from the dashboard to one of its secondary views.
func (c *Controller) Open(ctx context.Context, target View) error {
	trigger, ok := openTriggers[target]
	if !ok {
		return fmt.Errorf("%w: cannot open %s", ErrIllegalTransition, target)
	}
	return c.Fire(ctx, trigger)
}

func (c *Controller) Back(ctx context.Context) error {
	return c.Fire(ctx, TriggerBack)
}

func (c *Controller) ToggleTask(ctx context.Context, id string) error {
	return c.tasks.Toggle(ctx, id)
}
