// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

// Coach configures the language models behind the coaching chat and plan
// generation.
type Coach struct {
	// Provider selects the chat model provider, genai or openai.
	Provider string `koanf:"provider"`

	// ChatModel is the Gemini model for the coaching chat.
	ChatModel string `koanf:"chatmodel"`

	// PlanModel is the Gemini model for plan generation. Plans always use
	// Gemini for its structured output support.
	PlanModel string `koanf:"planmodel"`

	// OpenAIModel is the chat model when Provider is openai.
	OpenAIModel string `koanf:"openaimodel"`
}

// Storage is the configuration for file storage.
type Storage struct {
	// Bucket is the GCS bucket for user uploads such as progress photos.
	Bucket string `koanf:"bucket"`
}

type Config struct {
	config.Common

	// Coach is the configuration for the AI coach.
	Coach Coach `koanf:"coach"`

	// Storage is the configuration for file storage.
	Storage Storage `koanf:"storage"`
}
