// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package llm wraps the language model providers behind the coach. Chat
// turns can run on Gemini or OpenAI; plan generation always uses Gemini for
// its structured output support.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/fitchat/internal/config"
	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

const retries = 3

// FunctionCall is one tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// Turn is the model's reply to a chat turn: conversational text, plus any
// plan-modification calls. Either may be empty.
type Turn struct {
	Text  string
	Calls []FunctionCall
}

// Oracle issues requests to the coach models.
type Oracle struct {
	genAI *genai.Client
	oai   *openai.Client
	conf  config.Coach
}

func NewOracle(genAI *genai.Client, oai *openai.Client, conf config.Coach) *Oracle {
	return &Oracle{
		genAI: genAI,
		oai:   oai,
		conf:  conf,
	}
}

// Converse sends the conversation to the chat model with the coach tool set
// and returns its reply.
func (o *Oracle) Converse(ctx context.Context, system string, history []fitchatdb.ChatMessage, message string) (*Turn, error) {
	if o.conf.Provider == "openai" {
		return o.converseOpenAI(ctx, system, history, message)
	}
	return o.converseGemini(ctx, system, history, message)
}

func geminiHistory(history []fitchatdb.ChatMessage) []*genai.Content {
	content := make([]*genai.Content, 0, len(history)+2)
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == fitchatdb.ChatRoleAssistant {
			role = genai.RoleModel
		}
		content = append(content, genai.NewContentFromText(msg.Content, role))
	}
	return content
}

func openAIHistory(system string, history []fitchatdb.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+3)
	messages = append(messages, openai.SystemMessage(system))
	for _, msg := range history {
		if msg.Role == fitchatdb.ChatRoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

func (o *Oracle) converseGemini(ctx context.Context, system string, history []fitchatdb.ChatMessage, message string) (*Turn, error) {
	content := append(geminiHistory(history), genai.NewContentFromText(message, genai.RoleUser))

	res, err := o.generateContent(ctx, o.conf.ChatModel, content, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		Tools:             CoachTools(),
	})
	if err != nil {
		return nil, fmt.Errorf("llm: calling GenerateContent for chat: %w", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil {
		return nil, fmt.Errorf("llm: unexpected response from generate ai for chat: %v", res)
	}

	var turn Turn
	for _, part := range res.Candidates[0].Content.Parts {
		if part.Text != "" {
			turn.Text += part.Text
		}
		if fc := part.FunctionCall; fc != nil {
			turn.Calls = append(turn.Calls, FunctionCall{
				Name: fc.Name,
				Args: fc.Args,
			})
		}
	}
	return &turn, nil
}

func (o *Oracle) converseOpenAI(ctx context.Context, system string, history []fitchatdb.ChatMessage, message string) (*Turn, error) {
	tools, err := openAICoachTools()
	if err != nil {
		return nil, fmt.Errorf("llm: converting coach tools: %w", err)
	}

	messages := append(openAIHistory(system, history), openai.UserMessage(message))

	res, err := backoff.Retry(ctx, func() (*openai.ChatCompletion, error) {
		return o.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(o.conf.OpenAIModel),
			Messages: messages,
			Tools:    tools,
		})
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(retries))
	if err != nil {
		return nil, fmt.Errorf("llm: calling chat completions: %w", err)
	}
	if len(res.Choices) == 0 {
		return nil, fmt.Errorf("llm: unexpected response from chat completions: %v", res)
	}

	msg := res.Choices[0].Message
	turn := Turn{Text: msg.Content}
	for _, call := range msg.ToolCalls {
		var args map[string]any
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("llm: unmarshalling tool arguments: %w", err)
			}
		}
		turn.Calls = append(turn.Calls, FunctionCall{
			Name: call.Function.Name,
			Args: args,
		})
	}
	return &turn, nil
}

// FollowUp asks the chat model for a short conversational reply after a turn
// that produced tool calls but no text. results are the outcome messages
// from applying the calls.
func (o *Oracle) FollowUp(ctx context.Context, system string, history []fitchatdb.ChatMessage, message string, results []string) (string, error) {
	note := fmt.Sprintf(
		"The requested changes were applied with these results: %s Confirm them to the user in one or two sentences, plain text only.",
		strings.Join(results, " "))

	if o.conf.Provider == "openai" {
		messages := append(openAIHistory(system, history),
			openai.UserMessage(message), openai.SystemMessage(note))
		res, err := backoff.Retry(ctx, func() (*openai.ChatCompletion, error) {
			return o.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model:    openai.ChatModel(o.conf.OpenAIModel),
				Messages: messages,
			})
		}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(retries))
		if err != nil {
			return "", fmt.Errorf("llm: calling chat completions for follow-up: %w", err)
		}
		if len(res.Choices) == 0 {
			return "", fmt.Errorf("llm: unexpected response from chat completions for follow-up: %v", res)
		}
		return res.Choices[0].Message.Content, nil
	}

	content := append(geminiHistory(history),
		genai.NewContentFromText(message, genai.RoleUser),
		genai.NewContentFromText(note, genai.RoleUser))
	res, err := o.generateContent(ctx, o.conf.ChatModel, content, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
	})
	if err != nil {
		return "", fmt.Errorf("llm: calling GenerateContent for follow-up: %w", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm: unexpected response from generate ai for follow-up: %v", res)
	}
	var text string
	for _, part := range res.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}

// generateJSON runs a Gemini structured-output request and decodes the
// returned JSON document.
func (o *Oracle) generateJSON(ctx context.Context, system string, inputs []string, schema *genai.Schema) (map[string]any, error) {
	content := make([]*genai.Content, 0, len(inputs))
	for _, input := range inputs {
		content = append(content, genai.NewContentFromText(input, genai.RoleUser))
	}

	res, err := o.generateContent(ctx, o.conf.PlanModel, content, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: calling GenerateContent: %w", err)
	}
	if len(res.Candidates) != 1 || len(res.Candidates[0].Content.Parts) != 1 || res.Candidates[0].Content.Parts[0].Text == "" {
		return nil, fmt.Errorf("llm: unexpected response from generate ai: %v", res)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(res.Candidates[0].Content.Parts[0].Text), &doc); err != nil {
		return nil, fmt.Errorf("llm: failed to unmarshal generated document: %w", err)
	}
	return doc, nil
}

// GenerateWorkoutPlan generates a weekly workout plan document from the
// profile and any check-in history, both as JSON.
func (o *Oracle) GenerateWorkoutPlan(ctx context.Context, inputs []string) (map[string]any, error) {
	return o.generateJSON(ctx, WorkoutPlanPrompt(), inputs, workoutPlanSchema)
}

// GenerateMealPlan generates a weekly meal plan document from the profile
// JSON, targeting the given macros.
func (o *Oracle) GenerateMealPlan(ctx context.Context, system string, inputs []string) (map[string]any, error) {
	return o.generateJSON(ctx, system, inputs, mealPlanSchema)
}

func (o *Oracle) generateContent(ctx context.Context, model string, content []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return backoff.Retry(ctx, func() (*genai.GenerateContentResponse, error) {
		return o.genAI.Models.GenerateContent(ctx, model, content, cfg)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(retries))
}
