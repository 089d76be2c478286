package service

import (
	"alcyxob/coach-app/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTemplateFixture(t *testing.T) (*fixture, TemplateService) {
	t.Helper()
	f := newFixture(t)
	templates := NewTemplateService(
		&memTemplateRepo{s: f.store},
		&memCoachRepo{s: f.store},
		&memWeekRepo{s: f.store},
		&memDayRepo{s: f.store},
		&memWorkoutRepo{s: f.store},
		&memStepRepo{s: f.store},
		&memTxManager{store: f.store},
	)
	return f, templates
}

func TestCreateTemplateAssignsOmittedOrders(t *testing.T) {
	f, templates := newTemplateFixture(t)

	created, err := templates.CreateTemplate(context.Background(), f.coachUser.ID, CreateTemplateInput{
		Title:       "Couch to 5K",
		Description: "A gentle on-ramp for new runners.",
		Level:       domain.LevelBeginner,
		Type:        domain.PlanTypeRun,
		Weeks: []CreateWeekInput{
			{}, // no order supplied
			{},
			{},
		},
	})
	require.NoError(t, err)

	weeks := f.store.weeksByTemplateID(created.ID)
	require.Len(t, weeks, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{weeks[0].Order, weeks[1].Order, weeks[2].Order})
}

func TestCreateTemplateKeepsSparseOrders(t *testing.T) {
	f, templates := newTemplateFixture(t)

	created, err := templates.CreateTemplate(context.Background(), f.coachUser.ID, CreateTemplateInput{
		Title:       "Base Phase",
		Description: "Sparse ordering is intentional here.",
		Level:       domain.LevelAdvanced,
		Type:        domain.PlanTypeBike,
		Weeks: []CreateWeekInput{
			{Order: intPtr(10)},
			{Order: intPtr(5)},
		},
	})
	require.NoError(t, err)

	weeks := f.store.weeksByTemplateID(created.ID)
	require.Len(t, weeks, 2)
	// Returned sorted ascending, gaps preserved.
	assert.Equal(t, 5, weeks[0].Order)
	assert.Equal(t, 10, weeks[1].Order)
}

func TestCreateTemplateRejectsDuplicateOrders(t *testing.T) {
	f, templates := newTemplateFixture(t)

	templatesBefore := len(f.store.templates)
	weeksBefore := len(f.store.weeks)

	_, err := templates.CreateTemplate(context.Background(), f.coachUser.ID, CreateTemplateInput{
		Title:       "Broken Plan",
		Description: "Two weeks claim the same slot.",
		Level:       domain.LevelBeginner,
		Type:        domain.PlanTypeRun,
		Weeks: []CreateWeekInput{
			{Order: intPtr(1)},
			{Order: intPtr(1)},
		},
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "weeks.order", vErr.Field)

	// The transaction rolled back: no template, no weeks.
	assert.Len(t, f.store.templates, templatesBefore)
	assert.Len(t, f.store.weeks, weeksBefore)
}

func TestCreateTemplateRejectsNestedGroups(t *testing.T) {
	f, templates := newTemplateFixture(t)

	stepsBefore := len(f.store.steps)

	_, err := templates.CreateTemplate(context.Background(), f.coachUser.ID, CreateTemplateInput{
		Title:       "Too Deep",
		Description: "Groups inside groups are not supported.",
		Level:       domain.LevelBeginner,
		Type:        domain.PlanTypeRun,
		Weeks: []CreateWeekInput{
			{Days: []CreateDayInput{
				{DayOfWeek: 1, Workouts: []CreateWorkoutInput{
					{Title: "Session", Type: domain.WorkoutTypeRun, Steps: []CreateStepInput{
						{Name: "Outer", Type: domain.StepTypeWarmUp, Steps: []CreateStepInput{
							{Name: "Inner group", Type: domain.StepTypeWarmUp, Steps: []CreateStepInput{
								{Name: "Leaf", Type: domain.StepTypeTime, Value: 60},
							}},
						}},
					}},
				}},
			}},
		},
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, f.store.steps, stepsBefore)
}

func TestCreateTemplatePersistsNestedSteps(t *testing.T) {
	f, templates := newTemplateFixture(t)

	created, err := templates.CreateTemplate(context.Background(), f.coachUser.ID, CreateTemplateInput{
		Title:       "Track Night",
		Description: "One session with an interval block.",
		Level:       domain.LevelIntermediate,
		Type:        domain.PlanTypeRun,
		Weeks: []CreateWeekInput{
			{Days: []CreateDayInput{
				{DayOfWeek: 2, Workouts: []CreateWorkoutInput{
					{Title: "Intervals", Type: domain.WorkoutTypeRun, Steps: []CreateStepInput{
						{Name: "400m repeats", Type: domain.StepTypeDistance, Value: 400, Repetitions: intPtr(6), Steps: []CreateStepInput{
							{Name: "Run 400m", Type: domain.StepTypeDistance, Value: 400},
							{Name: "Rest", Type: domain.StepTypeRest, Value: 60},
						}},
					}},
				}},
			}},
		},
	})
	require.NoError(t, err)

	weeks := f.store.weeksByTemplateID(created.ID)
	require.Len(t, weeks, 1)
	days := f.store.daysByWeekID(weeks[0].ID)
	require.Len(t, days, 1)
	workouts := f.store.workoutsByDayID(days[0].ID)
	require.Len(t, workouts, 1)

	steps := f.store.stepsByWorkoutID(workouts[0].ID)
	tree, err := domain.BuildStepTree(steps)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, 6, tree[0].Step.Reps())
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Run 400m", tree[0].Children[0].Step.Name)
	assert.Equal(t, "Rest", tree[0].Children[1].Step.Name)
}

func TestCreateTemplateRequiresCoachProfile(t *testing.T) {
	f, templates := newTemplateFixture(t)

	_, err := templates.CreateTemplate(context.Background(), f.athleteUser.ID, CreateTemplateInput{
		Title:       "Not Yours",
		Description: "Athletes cannot author templates.",
		Level:       domain.LevelBeginner,
		Type:        domain.PlanTypeRun,
	})
	assert.ErrorIs(t, err, ErrNotACoach)
}

func TestGetTemplatePreview(t *testing.T) {
	f, templates := newTemplateFixture(t)

	preview, err := templates.GetTemplatePreview(context.Background(), f.template.ID)
	require.NoError(t, err)

	assert.Equal(t, f.template.ID, preview.Template.ID)
	assert.Equal(t, 1, preview.WeeksCount)
	require.NotNil(t, preview.FirstWeek)
	require.Len(t, preview.FirstWeek.Days, 2)

	// The nested step tree comes back reconstructed.
	intervals := preview.FirstWeek.Days[1].Workouts[0]
	require.Len(t, intervals.Steps, 1)
	assert.Equal(t, 3, intervals.Steps[0].Step.Reps())
	assert.Len(t, intervals.Steps[0].Children, 1)
}

func TestGetTemplatePreviewUnknownTemplate(t *testing.T) {
	_, templates := newTemplateFixture(t)

	_, err := templates.GetTemplatePreview(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestUpdateTemplateOwnerOnly(t *testing.T) {
	f, templates := newTemplateFixture(t)

	otherUser := f.store.addUser(domain.User{Username: "coach_two", Email: "two@example.com", Role: domain.RoleCoach})
	f.store.addCoach(domain.Coach{UserID: otherUser.ID})

	newTitle := "Hijacked"
	_, err := templates.UpdateTemplate(context.Background(), otherUser.ID, f.template.ID, UpdateTemplateInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrTemplateAccessDenied)
}

func TestUpdateTemplateChangesScalars(t *testing.T) {
	f, templates := newTemplateFixture(t)

	newTitle := "10K Builder v2"
	newLevel := domain.LevelAdvanced
	updated, err := templates.UpdateTemplate(context.Background(), f.coachUser.ID, f.template.ID, UpdateTemplateInput{
		Title: &newTitle,
		Level: &newLevel,
	})
	require.NoError(t, err)
	assert.Equal(t, "10K Builder v2", updated.Title)
	assert.Equal(t, domain.LevelAdvanced, updated.Level)
	// Untouched fields survive.
	assert.Equal(t, domain.PlanTypeRun, updated.Type)
}

func TestUpdateTemplateRejectsBadEnum(t *testing.T) {
	f, templates := newTemplateFixture(t)

	bad := domain.PlanLevel("legendary")
	_, err := templates.UpdateTemplate(context.Background(), f.coachUser.ID, f.template.ID, UpdateTemplateInput{Level: &bad})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetTemplateTreeOwnerOnly(t *testing.T) {
	f, templates := newTemplateFixture(t)

	otherUser := f.store.addUser(domain.User{Username: "coach_rival", Email: "rival@example.com", Role: domain.RoleCoach})
	f.store.addCoach(domain.Coach{UserID: otherUser.ID})

	_, err := templates.GetTemplateTree(context.Background(), otherUser.ID, f.template.ID)
	assert.ErrorIs(t, err, ErrTemplateAccessDenied)

	tree, err := templates.GetTemplateTree(context.Background(), f.coachUser.ID, f.template.ID)
	require.NoError(t, err)
	assert.Equal(t, f.template.ID, tree.Template.ID)
	require.Len(t, tree.Weeks, 1)
	assert.Len(t, tree.Weeks[0].Days, 2)
}

func TestGetTemplateTreeUnknownTemplate(t *testing.T) {
	f, templates := newTemplateFixture(t)

	_, err := templates.GetTemplateTree(context.Background(), f.coachUser.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestListMyTemplatesOnlyOwn(t *testing.T) {
	f, templates := newTemplateFixture(t)

	otherUser := f.store.addUser(domain.User{Username: "coach_two", Email: "other@example.com", Role: domain.RoleCoach})
	otherCoach := f.store.addCoach(domain.Coach{UserID: otherUser.ID})
	f.store.addTemplate(domain.PlanTemplate{
		CoachID: otherCoach.ID,
		Title:   "Sprint Camp",
		Level:   domain.LevelAdvanced,
		Type:    domain.PlanTypeRun,
	})

	mine, err := templates.ListMyTemplates(context.Background(), f.coachUser.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.template.ID, mine[0].ID)

	_, err = templates.ListMyTemplates(context.Background(), f.athleteUser.ID)
	assert.ErrorIs(t, err, ErrNotACoach)
}

func TestDeleteTemplateOwnerOnly(t *testing.T) {
	f, templates := newTemplateFixture(t)

	otherUser := f.store.addUser(domain.User{Username: "coach_three", Email: "three@example.com", Role: domain.RoleCoach})
	f.store.addCoach(domain.Coach{UserID: otherUser.ID})

	err := templates.DeleteTemplate(context.Background(), otherUser.ID, f.template.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Len(t, f.store.templates, 1)

	// The rejected delete rolled back: the whole tree is still there.
	assert.Len(t, f.store.weeks, 1)
	assert.Len(t, f.store.days, 2)
	assert.Len(t, f.store.workouts, 2)
	assert.Len(t, f.store.steps, 3)

	err = templates.DeleteTemplate(context.Background(), f.coachUser.ID, f.template.ID)
	require.NoError(t, err)
	assert.Empty(t, f.store.templates)
}

// Deleting a template takes its whole subtree with it: no week, day,
// workout, or step may stay behind.
func TestDeleteTemplateRemovesWholeTree(t *testing.T) {
	f, templates := newTemplateFixture(t)

	// The fixture tree: one week, two days, two workouts, three steps.
	require.Len(t, f.store.weeks, 1)
	require.Len(t, f.store.days, 2)
	require.Len(t, f.store.workouts, 2)
	require.Len(t, f.store.steps, 3)

	require.NoError(t, templates.DeleteTemplate(context.Background(), f.coachUser.ID, f.template.ID))

	assert.Empty(t, f.store.templates)
	assert.Empty(t, f.store.weeks)
	assert.Empty(t, f.store.days)
	assert.Empty(t, f.store.workouts)
	assert.Empty(t, f.store.steps)
}

// Plans cloned before a template is deleted keep their own tree.
func TestDeleteTemplateLeavesClonedPlansIntact(t *testing.T) {
	f, templates := newTemplateFixture(t)

	athletePlan, err := f.plans.OrderTemplate(context.Background(), f.template.ID, f.athleteUser.ID)
	require.NoError(t, err)

	require.NoError(t, templates.DeleteTemplate(context.Background(), f.coachUser.ID, f.template.ID))

	assert.Len(t, f.store.plans, 1)
	assert.Len(t, f.store.weeksByPlanID(athletePlan.PlanID), 1)
}
