package main

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Tutor answers chat messages. With an OpenRouter key it asks the LLM and
// falls back to the scripted replies on any error; without a key it runs in
// limited mode with scripted replies only.
type Tutor struct {
	client *openai.Client
	model  string
}

func NewTutor(apiKey, model string) *Tutor {
	if apiKey == "" {
		return &Tutor{}
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	return &Tutor{client: openai.NewClientWithConfig(cfg), model: model}
}

// Reply produces the assistant response for one user message. history is
// the prior conversation, oldest first.
func (t *Tutor) Reply(ctx context.Context, input, level string, history []ChatMessage) string {
	if level == "" {
		level = LevelA1
	}
	if t.client == nil {
		return scriptedReply(input, level)
	}

	messages := []openai.ChatCompletionMessage{{
		Role: openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(
			"You are a friendly German tutor. The student is at CEFR level %s. Answer briefly, correct mistakes gently, and include German examples with English glosses.",
			level),
	}}
	// keep the prompt small: last 10 turns only
	start := 0
	if len(history) > 10 {
		start = len(history) - 10
	}
	for _, m := range history[start:] {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: input,
	})

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    t.model,
		Messages: messages,
	})
	if err != nil || len(resp.Choices) == 0 {
		return scriptedReply(input, level)
	}
	return resp.Choices[0].Message.Content
}

// scriptedReply is the keyword-driven limited mode.
func scriptedReply(input, level string) string {
	in := strings.ToLower(input)
	switch {
	case strings.Contains(in, "grammar"):
		return "German grammar has 4 cases: Nominative (subject), Accusative (direct object), Dative (indirect object), and Genitive (possession). Would you like me to explain any specific case?"
	case strings.Contains(in, "practice"):
		return fmt.Sprintf("Let's practice! Based on your %s level, try this: 'Ich gehe heute ins Kino.' Can you tell me what this means and identify the verb?", level)
	case strings.Contains(in, "translate"):
		return "I can help with translation! Please share the sentence you'd like to translate, and I'll explain the grammar structure too."
	default:
		return fmt.Sprintf("Great question about '%s'! Keep practicing your %s level materials, and try the lesson and translator pages for more detail.", input, level)
	}
}
