package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Mongo collections. The fake
// transaction manager snapshots and restores it, so service tests can verify
// that nothing written inside a failed transaction is retained.
type memStore struct {
	users         []domain.User
	coaches       []domain.Coach
	athletes      []domain.Athlete
	templates     []domain.PlanTemplate
	plans         []domain.Plan
	weeks         []domain.Week
	days          []domain.Day
	workouts      []domain.Workout
	steps         []domain.WorkoutStep
	athletePlans  []domain.AthletePlan
	conversations []domain.Conversation
	messages      []domain.Message

	// failStepCreateAt makes the Nth workout-step insert fail (1-based).
	// Zero disables the failure.
	failStepCreateAt  int
	stepCreates       int
	failMessageCreate bool
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) snapshot() memStore {
	cp := *s
	cp.users = append([]domain.User(nil), s.users...)
	cp.coaches = append([]domain.Coach(nil), s.coaches...)
	cp.athletes = append([]domain.Athlete(nil), s.athletes...)
	cp.templates = append([]domain.PlanTemplate(nil), s.templates...)
	cp.plans = append([]domain.Plan(nil), s.plans...)
	cp.weeks = append([]domain.Week(nil), s.weeks...)
	cp.days = append([]domain.Day(nil), s.days...)
	cp.workouts = append([]domain.Workout(nil), s.workouts...)
	cp.steps = append([]domain.WorkoutStep(nil), s.steps...)
	cp.athletePlans = append([]domain.AthletePlan(nil), s.athletePlans...)
	cp.conversations = append([]domain.Conversation(nil), s.conversations...)
	cp.messages = append([]domain.Message(nil), s.messages...)
	return cp
}

// memTxManager restores the pre-transaction snapshot when fn fails,
// mirroring a real transaction abort.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	before := m.store.snapshot()
	if err := fn(ctx); err != nil {
		*m.store = before
		return err
	}
	return nil
}

// --- Seed helpers ---

func (s *memStore) addUser(u domain.User) domain.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, u)
	return u
}

func (s *memStore) addCoach(c domain.Coach) domain.Coach {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.coaches = append(s.coaches, c)
	return c
}

func (s *memStore) addAthlete(a domain.Athlete) domain.Athlete {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	s.athletes = append(s.athletes, a)
	return a
}

func (s *memStore) addTemplate(t domain.PlanTemplate) domain.PlanTemplate {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.templates = append(s.templates, t)
	return t
}

func (s *memStore) addWeek(w domain.Week) domain.Week {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	s.weeks = append(s.weeks, w)
	return w
}

func (s *memStore) addDay(d domain.Day) domain.Day {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.days = append(s.days, d)
	return d
}

func (s *memStore) addWorkout(w domain.Workout) domain.Workout {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	s.workouts = append(s.workouts, w)
	return w
}

func (s *memStore) addStep(st domain.WorkoutStep) domain.WorkoutStep {
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	s.steps = append(s.steps, st)
	return st
}

// --- Query helpers ---

func (s *memStore) weeksByPlanID(planID primitive.ObjectID) []domain.Week {
	var out []domain.Week
	for _, w := range s.weeks {
		if w.PlanID != nil && *w.PlanID == planID {
			out = append(out, w)
		}
	}
	sortByOrder(out, func(w domain.Week) int { return w.Order })
	return out
}

func (s *memStore) weeksByTemplateID(templateID primitive.ObjectID) []domain.Week {
	var out []domain.Week
	for _, w := range s.weeks {
		if w.TemplateID != nil && *w.TemplateID == templateID {
			out = append(out, w)
		}
	}
	sortByOrder(out, func(w domain.Week) int { return w.Order })
	return out
}

func (s *memStore) daysByWeekID(weekID primitive.ObjectID) []domain.Day {
	var out []domain.Day
	for _, d := range s.days {
		if d.WeekID == weekID {
			out = append(out, d)
		}
	}
	sortByOrder(out, func(d domain.Day) int { return d.Order })
	return out
}

func (s *memStore) workoutsByDayID(dayID primitive.ObjectID) []domain.Workout {
	var out []domain.Workout
	for _, w := range s.workouts {
		if w.DayID == dayID {
			out = append(out, w)
		}
	}
	sortByOrder(out, func(w domain.Workout) int { return w.Order })
	return out
}

func (s *memStore) stepsByWorkoutID(workoutID primitive.ObjectID) []domain.WorkoutStep {
	var out []domain.WorkoutStep
	for _, st := range s.steps {
		if st.WorkoutID == workoutID {
			out = append(out, st)
		}
	}
	sortByOrder(out, func(st domain.WorkoutStep) int { return st.Order })
	return out
}

func sortByOrder[T any](items []T, order func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return order(items[i]) < order(items[j]) })
}

// --- Fake repositories ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users = append(r.s.users, *user)
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name, username string) error {
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].Name = name
			r.s.users[i].Username = username
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memUserRepo) SetAvatar(_ context.Context, id primitive.ObjectID, objectKey string) error {
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].Avatar = objectKey
			return nil
		}
	}
	return repository.ErrNotFound
}

type memCoachRepo struct{ s *memStore }

func (r *memCoachRepo) Create(_ context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	if coach.ID.IsZero() {
		coach.ID = primitive.NewObjectID()
	}
	r.s.coaches = append(r.s.coaches, *coach)
	return coach.ID, nil
}

func (r *memCoachRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	for _, c := range r.s.coaches {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCoachRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	for _, c := range r.s.coaches {
		if c.UserID == userID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCoachRepo) List(_ context.Context) ([]domain.Coach, error) {
	return append([]domain.Coach(nil), r.s.coaches...), nil
}

func (r *memCoachRepo) Update(_ context.Context, coach *domain.Coach) error {
	for i := range r.s.coaches {
		if r.s.coaches[i].ID == coach.ID {
			r.s.coaches[i] = *coach
			return nil
		}
	}
	return repository.ErrNotFound
}

type memAthleteRepo struct{ s *memStore }

func (r *memAthleteRepo) Create(_ context.Context, athlete *domain.Athlete) (primitive.ObjectID, error) {
	if athlete.ID.IsZero() {
		athlete.ID = primitive.NewObjectID()
	}
	r.s.athletes = append(r.s.athletes, *athlete)
	return athlete.ID, nil
}

func (r *memAthleteRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Athlete, error) {
	for _, a := range r.s.athletes {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAthleteRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Athlete, error) {
	for _, a := range r.s.athletes {
		if a.UserID == userID {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memTemplateRepo struct{ s *memStore }

func (r *memTemplateRepo) Create(_ context.Context, template *domain.PlanTemplate) (primitive.ObjectID, error) {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	r.s.templates = append(r.s.templates, *template)
	return template.ID, nil
}

func (r *memTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.PlanTemplate, error) {
	for _, t := range r.s.templates {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTemplateRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.PlanTemplate, error) {
	var out []domain.PlanTemplate
	for _, t := range r.s.templates {
		if t.CoachID == coachID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) List(_ context.Context) ([]domain.PlanTemplate, error) {
	return append([]domain.PlanTemplate(nil), r.s.templates...), nil
}

func (r *memTemplateRepo) Update(_ context.Context, template *domain.PlanTemplate) error {
	for i := range r.s.templates {
		if r.s.templates[i].ID == template.ID {
			r.s.templates[i] = *template
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memTemplateRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	for i := range r.s.templates {
		if r.s.templates[i].ID == id && r.s.templates[i].CoachID == coachID {
			r.s.templates = append(r.s.templates[:i], r.s.templates[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memPlanRepo struct{ s *memStore }

func (r *memPlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	r.s.plans = append(r.s.plans, *plan)
	return plan.ID, nil
}

func (r *memPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	for _, p := range r.s.plans {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memWeekRepo struct{ s *memStore }

func (r *memWeekRepo) Create(_ context.Context, week *domain.Week) (primitive.ObjectID, error) {
	if !week.HasOneOwner() {
		return primitive.NilObjectID, errors.New("week must have exactly one owner")
	}
	if week.ID.IsZero() {
		week.ID = primitive.NewObjectID()
	}
	r.s.weeks = append(r.s.weeks, *week)
	return week.ID, nil
}

func (r *memWeekRepo) GetByTemplateID(_ context.Context, templateID primitive.ObjectID) ([]domain.Week, error) {
	return r.s.weeksByTemplateID(templateID), nil
}

func (r *memWeekRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.Week, error) {
	return r.s.weeksByPlanID(planID), nil
}

func (r *memWeekRepo) DeleteByTemplateID(_ context.Context, templateID primitive.ObjectID) error {
	kept := r.s.weeks[:0]
	for _, w := range r.s.weeks {
		if w.TemplateID == nil || *w.TemplateID != templateID {
			kept = append(kept, w)
		}
	}
	r.s.weeks = kept
	return nil
}

type memDayRepo struct{ s *memStore }

func (r *memDayRepo) Create(_ context.Context, day *domain.Day) (primitive.ObjectID, error) {
	if day.ID.IsZero() {
		day.ID = primitive.NewObjectID()
	}
	r.s.days = append(r.s.days, *day)
	return day.ID, nil
}

func (r *memDayRepo) GetByWeekID(_ context.Context, weekID primitive.ObjectID) ([]domain.Day, error) {
	return r.s.daysByWeekID(weekID), nil
}

func (r *memDayRepo) DeleteByWeekID(_ context.Context, weekID primitive.ObjectID) error {
	kept := r.s.days[:0]
	for _, d := range r.s.days {
		if d.WeekID != weekID {
			kept = append(kept, d)
		}
	}
	r.s.days = kept
	return nil
}

type memWorkoutRepo struct{ s *memStore }

func (r *memWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.ID.IsZero() {
		workout.ID = primitive.NewObjectID()
	}
	r.s.workouts = append(r.s.workouts, *workout)
	return workout.ID, nil
}

func (r *memWorkoutRepo) GetByDayID(_ context.Context, dayID primitive.ObjectID) ([]domain.Workout, error) {
	return r.s.workoutsByDayID(dayID), nil
}

func (r *memWorkoutRepo) DeleteByDayID(_ context.Context, dayID primitive.ObjectID) error {
	kept := r.s.workouts[:0]
	for _, w := range r.s.workouts {
		if w.DayID != dayID {
			kept = append(kept, w)
		}
	}
	r.s.workouts = kept
	return nil
}

type memStepRepo struct{ s *memStore }

func (r *memStepRepo) Create(_ context.Context, step *domain.WorkoutStep) (primitive.ObjectID, error) {
	r.s.stepCreates++
	if r.s.failStepCreateAt > 0 && r.s.stepCreates >= r.s.failStepCreateAt {
		return primitive.NilObjectID, errors.New("step insert failed")
	}
	if step.ID.IsZero() {
		step.ID = primitive.NewObjectID()
	}
	r.s.steps = append(r.s.steps, *step)
	return step.ID, nil
}

func (r *memStepRepo) GetByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutStep, error) {
	return r.s.stepsByWorkoutID(workoutID), nil
}

func (r *memStepRepo) DeleteByWorkoutID(_ context.Context, workoutID primitive.ObjectID) error {
	kept := r.s.steps[:0]
	for _, st := range r.s.steps {
		if st.WorkoutID != workoutID {
			kept = append(kept, st)
		}
	}
	r.s.steps = kept
	return nil
}

type memAthletePlanRepo struct{ s *memStore }

func (r *memAthletePlanRepo) Create(_ context.Context, athletePlan *domain.AthletePlan) (primitive.ObjectID, error) {
	if athletePlan.ID.IsZero() {
		athletePlan.ID = primitive.NewObjectID()
	}
	r.s.athletePlans = append(r.s.athletePlans, *athletePlan)
	return athletePlan.ID, nil
}

func (r *memAthletePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.AthletePlan, error) {
	for _, ap := range r.s.athletePlans {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAthletePlanRepo) GetByAthleteID(_ context.Context, athleteID primitive.ObjectID) ([]domain.AthletePlan, error) {
	var out []domain.AthletePlan
	for _, ap := range r.s.athletePlans {
		if ap.AthleteID == athleteID {
			out = append(out, ap)
		}
	}
	return out, nil
}

type memConversationRepo struct{ s *memStore }

func (r *memConversationRepo) Create(_ context.Context, conversation *domain.Conversation) (primitive.ObjectID, error) {
	if conversation.ID.IsZero() {
		conversation.ID = primitive.NewObjectID()
	}
	r.s.conversations = append(r.s.conversations, *conversation)
	return conversation.ID, nil
}

func (r *memConversationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	for _, c := range r.s.conversations {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memConversationRepo) GetByParticipant(_ context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, c := range r.s.conversations {
		if c.Involves(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memConversationRepo) FindBetween(_ context.Context, userID, otherUserID primitive.ObjectID) (*domain.Conversation, error) {
	for _, c := range r.s.conversations {
		if (c.UserID == userID && c.RecipientID == otherUserID) ||
			(c.UserID == otherUserID && c.RecipientID == userID) {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memMessageRepo struct{ s *memStore }

func (r *memMessageRepo) Create(_ context.Context, message *domain.Message) (primitive.ObjectID, error) {
	if r.s.failMessageCreate {
		return primitive.NilObjectID, errors.New("message insert failed")
	}
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	r.s.messages = append(r.s.messages, *message)
	return message.ID, nil
}

func (r *memMessageRepo) GetByConversationID(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

// noopNotifier is used by tests that are not about messaging.
type noopNotifier struct {
	calls []*domain.AthletePlan
}

func (n *noopNotifier) PlanOrdered(_ context.Context, athletePlan *domain.AthletePlan) {
	n.calls = append(n.calls, athletePlan)
}
