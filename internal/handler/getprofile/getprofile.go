// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getprofile

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/nutrition"
)

// Response carries the user's profile and their current calorie/macro
// targets derived from it.
type Response struct {
	Profile *fitchatdb.Profile  `json:"profile"`
	Targets fitchatdb.Nutrition `json:"targets"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler returns the user's profile.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) GetProfile(ctx context.Context) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID
	profile, err := h.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Response{
		Profile: profile,
		Targets: nutrition.Targets(profile),
	}, nil
}
