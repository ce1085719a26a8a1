// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitchatdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("fitchatdb: not found")

// ErrVersionConflict is returned when a plan save loses a race against a
// concurrent writer. The in-memory mutation should be discarded.
var ErrVersionConflict = errors.New("fitchatdb: plan version conflict")

// Store reads and writes fitchat documents in Firestore. Plans are written
// whole-document with an optimistic version check; there is no diffing.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(userID)
}

// GetProfile returns the profile of the user, or ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.userDoc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fitchatdb: fetching profile: %w", err)
	}
	var profile Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("fitchatdb: decoding profile: %w", err)
	}
	return &profile, nil
}

// SetProfile writes the full profile document.
func (s *Store) SetProfile(ctx context.Context, userID string, profile *Profile) error {
	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}
	if _, err := s.userDoc(userID).Set(ctx, profile); err != nil {
		return fmt.Errorf("fitchatdb: setting profile: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial update to the profile document. Only the
// given fields are written.
func (s *Store) UpdateProfile(ctx context.Context, userID string, updates []firestore.Update) error {
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})
	if _, err := s.userDoc(userID).Update(ctx, updates); err != nil {
		return fmt.Errorf("fitchatdb: updating profile: %w", err)
	}
	return nil
}

func (s *Store) activePlanDoc(ctx context.Context, col *firestore.CollectionRef) (*firestore.DocumentSnapshot, error) {
	doc, err := col.Query.WhereEntity(firestore.PropertyFilter{
		Path: "active", Operator: "==", Value: true,
	}).Limit(1).Documents(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fitchatdb: querying active plan: %w", err)
	}
	return doc, nil
}

// GetActiveWorkoutPlan returns the user's current workout plan, or
// ErrNotFound when the user has none.
func (s *Store) GetActiveWorkoutPlan(ctx context.Context, userID string) (*WorkoutPlan, error) {
	doc, err := s.activePlanDoc(ctx, s.userDoc(userID).Collection("workoutPlans"))
	if err != nil {
		return nil, err
	}
	var plan WorkoutPlan
	if err := doc.DataTo(&plan); err != nil {
		return nil, fmt.Errorf("fitchatdb: decoding workout plan: %w", err)
	}
	return &plan, nil
}

// GetActiveMealPlan returns the user's current meal plan, or ErrNotFound
// when the user has none.
func (s *Store) GetActiveMealPlan(ctx context.Context, userID string) (*MealPlan, error) {
	doc, err := s.activePlanDoc(ctx, s.userDoc(userID).Collection("mealPlans"))
	if err != nil {
		return nil, err
	}
	var plan MealPlan
	if err := doc.DataTo(&plan); err != nil {
		return nil, fmt.Errorf("fitchatdb: decoding meal plan: %w", err)
	}
	return &plan, nil
}

func (s *Store) deactivateActive(t *firestore.Transaction, col *firestore.CollectionRef) error {
	docs, err := t.Documents(col.Query.WhereEntity(firestore.PropertyFilter{
		Path: "active", Operator: "==", Value: true,
	})).GetAll()
	if err != nil {
		return fmt.Errorf("fitchatdb: querying active plans: %w", err)
	}
	for _, doc := range docs {
		if err := t.Update(doc.Ref, []firestore.Update{{Path: "active", Value: false}}); err != nil {
			return fmt.Errorf("fitchatdb: deactivating plan: %w", err)
		}
	}
	return nil
}

// CreateWorkoutPlan inserts plan as the user's new active workout plan and
// deactivates the previous active plan in the same transaction. Prior plans
// are retained for history.
func (s *Store) CreateWorkoutPlan(ctx context.Context, userID string, plan *WorkoutPlan) error {
	plan.UserID = userID
	plan.Active = true
	plan.Version = 1
	plan.CreatedAt = time.Now()
	col := s.userDoc(userID).Collection("workoutPlans")
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		if err := s.deactivateActive(t, col); err != nil {
			return err
		}
		return t.Set(col.Doc(plan.ID), plan)
	}); err != nil {
		return fmt.Errorf("fitchatdb: creating workout plan: %w", err)
	}
	return nil
}

// CreateMealPlan inserts plan as the user's new active meal plan with the
// same deactivation contract as CreateWorkoutPlan.
func (s *Store) CreateMealPlan(ctx context.Context, userID string, plan *MealPlan) error {
	plan.UserID = userID
	plan.Active = true
	plan.Version = 1
	plan.CreatedAt = time.Now()
	col := s.userDoc(userID).Collection("mealPlans")
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		if err := s.deactivateActive(t, col); err != nil {
			return err
		}
		return t.Set(col.Doc(plan.ID), plan)
	}); err != nil {
		return fmt.Errorf("fitchatdb: creating meal plan: %w", err)
	}
	return nil
}

// SaveWorkoutPlan writes the whole plan document. The write only succeeds if
// the stored version still matches plan.Version; on success plan.Version is
// incremented.
func (s *Store) SaveWorkoutPlan(ctx context.Context, userID string, plan *WorkoutPlan) error {
	ref := s.userDoc(userID).Collection("workoutPlans").Doc(plan.ID)
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		doc, err := t.Get(ref)
		if err != nil {
			return fmt.Errorf("fitchatdb: fetching workout plan for save: %w", err)
		}
		var stored WorkoutPlan
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("fitchatdb: decoding workout plan for save: %w", err)
		}
		if stored.Version != plan.Version {
			return ErrVersionConflict
		}
		plan.Version++
		return t.Set(ref, plan)
	}); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return ErrVersionConflict
		}
		return fmt.Errorf("fitchatdb: saving workout plan: %w", err)
	}
	return nil
}

// SaveMealPlan writes the whole plan document with the same version check as
// SaveWorkoutPlan.
func (s *Store) SaveMealPlan(ctx context.Context, userID string, plan *MealPlan) error {
	ref := s.userDoc(userID).Collection("mealPlans").Doc(plan.ID)
	if err := s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		doc, err := t.Get(ref)
		if err != nil {
			return fmt.Errorf("fitchatdb: fetching meal plan for save: %w", err)
		}
		var stored MealPlan
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("fitchatdb: decoding meal plan for save: %w", err)
		}
		if stored.Version != plan.Version {
			return ErrVersionConflict
		}
		plan.Version++
		return t.Set(ref, plan)
	}); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return ErrVersionConflict
		}
		return fmt.Errorf("fitchatdb: saving meal plan: %w", err)
	}
	return nil
}

// AddCheckIn stores a new check-in record. Check-ins are never updated.
func (s *Store) AddCheckIn(ctx context.Context, userID string, checkIn *CheckIn) error {
	checkIn.CreatedAt = time.Now()
	if _, err := s.userDoc(userID).Collection("checkIns").Doc(checkIn.ID).Create(ctx, checkIn); err != nil {
		return fmt.Errorf("fitchatdb: creating check-in: %w", err)
	}
	return nil
}

// ListCheckIns returns up to limit most recent check-ins, newest first.
func (s *Store) ListCheckIns(ctx context.Context, userID string, limit int) ([]CheckIn, error) {
	iter := s.userDoc(userID).Collection("checkIns").
		OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var checkIns []CheckIn
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fitchatdb: fetching check-in: %w", err)
		}
		var checkIn CheckIn
		if err := doc.DataTo(&checkIn); err != nil {
			return nil, fmt.Errorf("fitchatdb: decoding check-in: %w", err)
		}
		checkIns = append(checkIns, checkIn)
	}
	return checkIns, nil
}

// AddSession stores a logged workout session.
func (s *Store) AddSession(ctx context.Context, userID string, session *WorkoutSession) error {
	session.CreatedAt = time.Now()
	if _, err := s.userDoc(userID).Collection("sessions").Doc(session.ID).Create(ctx, session); err != nil {
		return fmt.Errorf("fitchatdb: creating session: %w", err)
	}
	return nil
}

// GetChat returns a coaching chat by ID, or ErrNotFound.
func (s *Store) GetChat(ctx context.Context, userID string, chatID string) (*Chat, error) {
	doc, err := s.userDoc(userID).Collection("chats").Doc(chatID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fitchatdb: fetching chat: %w", err)
	}
	var chat Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, fmt.Errorf("fitchatdb: decoding chat: %w", err)
	}
	return &chat, nil
}

// SaveChat writes the whole chat document.
func (s *Store) SaveChat(ctx context.Context, userID string, chat *Chat) error {
	chat.UpdatedAt = time.Now()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = chat.UpdatedAt
	}
	if _, err := s.userDoc(userID).Collection("chats").Doc(chat.ID).Set(ctx, chat); err != nil {
		return fmt.Errorf("fitchatdb: saving chat: %w", err)
	}
	return nil
}
