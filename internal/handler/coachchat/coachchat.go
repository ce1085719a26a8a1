// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package coachchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/llm"
	"github.com/curioswitch/fitchat/internal/planmod"
)

// Request is one user message in a coaching chat. ChatID is empty for the
// first message of a new conversation.
type Request struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// Response is the coach's reply. The modified flags tell the client which
// plan documents to refetch.
type Response struct {
	ChatID           string `json:"chatId"`
	Reply            string `json:"reply"`
	PlanModified     bool   `json:"planModified"`
	MealPlanModified bool   `json:"mealPlanModified"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store, oracle *llm.Oracle) *Handler {
	return &Handler{
		store:      store,
		oracle:     oracle,
		dispatcher: planmod.NewDispatcher(store),
	}
}

// Handler runs coaching chat turns: it sends the conversation to the model
// with the plan-modification tool set, applies any requested operations, and
// persists the conversation.
type Handler struct {
	store      *fitchatdb.Store
	oracle     *llm.Oracle
	dispatcher *planmod.Dispatcher
}

func (h *Handler) Chat(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("coachchat: empty message")
	}
	userID := firebaseauth.TokenFromContext(ctx).UID

	var profile *fitchatdb.Profile
	var workoutPlan *fitchatdb.WorkoutPlan
	var mealPlan *fitchatdb.MealPlan
	var chat *fitchatdb.Chat

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		p, err := h.store.GetProfile(grpCtx, userID)
		if err != nil {
			return fmt.Errorf("coachchat: fetching profile: %w", err)
		}
		profile = p
		return nil
	})
	grp.Go(func() error {
		p, err := h.store.GetActiveWorkoutPlan(grpCtx, userID)
		if err != nil && !errors.Is(err, fitchatdb.ErrNotFound) {
			return fmt.Errorf("coachchat: fetching workout plan: %w", err)
		}
		workoutPlan = p
		return nil
	})
	grp.Go(func() error {
		p, err := h.store.GetActiveMealPlan(grpCtx, userID)
		if err != nil && !errors.Is(err, fitchatdb.ErrNotFound) {
			return fmt.Errorf("coachchat: fetching meal plan: %w", err)
		}
		mealPlan = p
		return nil
	})
	if req.ChatID != "" {
		grp.Go(func() error {
			c, err := h.store.GetChat(grpCtx, userID, req.ChatID)
			if err != nil {
				return fmt.Errorf("coachchat: fetching chat: %w", err)
			}
			chat = c
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if chat == nil {
		chat = &fitchatdb.Chat{ID: uuid.NewString()}
	}

	system := llm.CoachPrompt(ctx, docJSON(profile), docJSON(workoutPlan), docJSON(mealPlan))
	turn, err := h.oracle.Converse(ctx, system, chat.Messages, req.Message)
	if err != nil {
		return nil, fmt.Errorf("coachchat: conversing: %w", err)
	}

	res := &Response{ChatID: chat.ID}
	parts := []string{}
	if turn.Text != "" {
		parts = append(parts, turn.Text)
	}
	if len(turn.Calls) > 0 {
		calls := make([]planmod.Call, len(turn.Calls))
		for i, call := range turn.Calls {
			calls[i] = planmod.Call{Name: call.Name, Args: call.Args}
		}
		batch := h.dispatcher.Apply(ctx, userID, profile, workoutPlan, mealPlan, calls)
		parts = append(parts, batch.Messages...)
		res.PlanModified = batch.PlanModified
		res.MealPlanModified = batch.MealPlanModified

		if turn.Text == "" {
			// The model only called tools. Ask it for a conversational
			// confirmation; the raw outcome messages are the fallback.
			followUp, err := h.oracle.FollowUp(ctx, system, chat.Messages, req.Message, batch.Messages)
			if err != nil {
				slog.WarnContext(ctx, "coachchat: follow-up", "error", err)
			} else if followUp != "" {
				parts = append([]string{followUp}, parts...)
			}
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "I'm not sure how to help with that, could you rephrase?")
	}
	res.Reply = strings.Join(parts, "\n\n")

	chat.Messages = append(chat.Messages,
		fitchatdb.ChatMessage{Role: fitchatdb.ChatRoleUser, Content: req.Message},
		fitchatdb.ChatMessage{Role: fitchatdb.ChatRoleAssistant, Content: res.Reply},
	)
	if err := h.store.SaveChat(ctx, userID, chat); err != nil {
		return nil, fmt.Errorf("coachchat: saving chat: %w", err)
	}

	return res, nil
}

// docJSON renders a document for the system prompt. The coach is told
// explicitly when a document doesn't exist yet.
func docJSON[T any](doc *T) string {
	if doc == nil {
		return "none"
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "none"
	}
	return string(b)
}
