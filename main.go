// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/fitchat/internal/config"
	"github.com/curioswitch/fitchat/internal/file"
	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/handler/checkin"
	"github.com/curioswitch/fitchat/internal/handler/coachchat"
	"github.com/curioswitch/fitchat/internal/handler/getmealplan"
	"github.com/curioswitch/fitchat/internal/handler/getprofile"
	"github.com/curioswitch/fitchat/internal/handler/getworkoutplan"
	"github.com/curioswitch/fitchat/internal/handler/logsession"
	"github.com/curioswitch/fitchat/internal/handler/onboard"
	"github.com/curioswitch/fitchat/internal/handler/recalcnutrition"
	"github.com/curioswitch/fitchat/internal/handler/updateprofile"
	"github.com/curioswitch/fitchat/internal/httpapi"
	"github.com/curioswitch/fitchat/internal/i18n"
	"github.com/curioswitch/fitchat/internal/llm"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()
	store := fitchatdb.NewStore(firestore)

	storageClient, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storageClient.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	bucket := conf.Storage.Bucket
	if bucket == "" {
		bucket = conf.Google.Project + "-uploads"
	}
	files := file.NewIO(storageClient, bucket)

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: create genai client: %w", err)
	}

	oai := openai.NewClient()

	oracle := llm.NewOracle(genAI, &oai, conf.Coach)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/internal/")
	}))
	mux.Use(i18n.Middleware())

	httpapi.Post(mux, "/api/onboard", onboard.NewHandler(store, oracle).Onboard)
	httpapi.Post(mux, "/api/coach/chat", coachchat.NewHandler(store, oracle).Chat)
	httpapi.Post(mux, "/api/checkin", checkin.NewHandler(store, oracle, files).CheckIn)
	httpapi.Post(mux, "/api/sessions", logsession.NewHandler(store).LogSession)
	httpapi.Post(mux, "/api/profile", updateprofile.NewHandler(store).UpdateProfile)
	httpapi.Post(mux, "/api/nutrition/recalculate", recalcnutrition.NewHandler(store).Recalculate)
	httpapi.Get(mux, "/api/workout-plan", getworkoutplan.NewHandler(store).GetWorkoutPlan)
	httpapi.Get(mux, "/api/meal-plan", getmealplan.NewHandler(store).GetMealPlan)
	httpapi.Get(mux, "/api/profile", getprofile.NewHandler(store).GetProfile)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
