package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildStepTreeFlat(t *testing.T) {
	workoutID := primitive.NewObjectID()
	steps := []WorkoutStep{
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, Name: "Run", Order: 0, Type: StepTypeDistance, Value: 5000},
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, Name: "Stretch", Order: 1, Type: StepTypeTime, Value: 300},
	}

	tree, err := BuildStepTree(steps)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Empty(t, tree[0].Children)
	assert.Empty(t, tree[1].Children)
	assert.Equal(t, 2, CountSteps(tree))
}

func TestBuildStepTreeNested(t *testing.T) {
	workoutID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()
	reps := 3

	steps := []WorkoutStep{
		{ID: groupID, WorkoutID: workoutID, Name: "Intervals", Order: 1, Type: StepTypeWarmUp, Repetitions: &reps},
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, ParentStepID: &groupID, Name: "Run 400m", Order: 0, Type: StepTypeDistance, Value: 400},
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, ParentStepID: &groupID, Name: "Rest", Order: 1, Type: StepTypeRest, Value: 60},
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, Name: "Cool down", Order: 2, Type: StepTypeCoolDown, Value: 600},
	}

	tree, err := BuildStepTree(steps)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	group := tree[0]
	assert.Equal(t, "Intervals", group.Step.Name)
	assert.Equal(t, 3, group.Step.Reps())
	require.Len(t, group.Children, 2)
	assert.Equal(t, "Run 400m", group.Children[0].Step.Name)

	assert.Equal(t, 4, CountSteps(tree))
}

func TestBuildStepTreeOrphanParent(t *testing.T) {
	workoutID := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	_, err := BuildStepTree([]WorkoutStep{
		{ID: primitive.NewObjectID(), WorkoutID: workoutID, ParentStepID: &missing, Name: "Lost child", Type: StepTypeTime},
	})
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "parentStepId", vErr.Field)
}

func TestBuildStepTreeEmpty(t *testing.T) {
	tree, err := BuildStepTree(nil)
	require.NoError(t, err)
	assert.Empty(t, tree)
	assert.Equal(t, 0, CountSteps(tree))
}

func TestRepsDefaultsToOne(t *testing.T) {
	var s WorkoutStep
	assert.Equal(t, 1, s.Reps())

	zero := 0
	s.Repetitions = &zero
	assert.Equal(t, 1, s.Reps())

	five := 5
	s.Repetitions = &five
	assert.Equal(t, 5, s.Reps())
}

func TestWeekHasOneOwner(t *testing.T) {
	templateID := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	assert.False(t, (&Week{}).HasOneOwner())
	assert.True(t, (&Week{TemplateID: &templateID}).HasOneOwner())
	assert.True(t, (&Week{PlanID: &planID}).HasOneOwner())
	assert.False(t, (&Week{TemplateID: &templateID, PlanID: &planID}).HasOneOwner())
}
