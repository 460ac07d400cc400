package service

import (
	"context"
	"fmt"

	"diet_tracker/internal/chat"
)

const (
	systemPrompt = "You are a helpful counseling assistant."

	// feedbackQuestion is the fixed user turn sent with a statistics summary.
	feedbackQuestion = "오늘 섭취량에 대해 어떻게 생각하나요?"
)

// ChatService is the scripted nutrition chatbot: it appends turns to the
// session transcript and forwards the whole conversation to the completion
// provider. There is no dialogue management beyond the transcript.
type ChatService struct {
	completer Completer
	sessions  Sessions
	stats     Statistics
}

var _ Chat = (*ChatService)(nil)

func NewChatService(completer Completer, sessions Sessions, stats Statistics) *ChatService {
	return &ChatService{completer: completer, sessions: sessions, stats: stats}
}

// Say appends the user's turn and returns the assistant's reply. On provider
// failure the user turn stays in the transcript and the error is returned for
// the transport layer to classify (rate limit vs. other).
func (c *ChatService) Say(ctx context.Context, userID int, text string) (string, error) {
	c.seedTranscript(userID)
	c.sessions.AppendTranscript(userID, chat.Message{Role: chat.RoleUser, Content: text})

	reply, err := c.completer.Complete(ctx, c.sessions.Transcript(userID))
	if err != nil {
		return "", err
	}

	c.sessions.AppendTranscript(userID, chat.Message{Role: chat.RoleAssistant, Content: reply})
	return reply, nil
}

// StatsFeedback injects the current nutrition summary as a system turn plus
// the fixed feedback question, and returns the assistant's comment.
func (c *ChatService) StatsFeedback(ctx context.Context, userID int) (string, error) {
	sum, err := c.stats.Summarize(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("summarize for feedback: %w", err)
	}

	c.seedTranscript(userID)
	c.sessions.AppendTranscript(userID,
		chat.Message{Role: chat.RoleSystem, Content: "Here is today's nutrition summary: " + formatSummary(sum)},
		chat.Message{Role: chat.RoleUser, Content: feedbackQuestion},
	)

	reply, err := c.completer.Complete(ctx, c.sessions.Transcript(userID))
	if err != nil {
		return "", err
	}

	c.sessions.AppendTranscript(userID, chat.Message{Role: chat.RoleAssistant, Content: reply})
	return reply, nil
}

// seedTranscript ensures the transcript opens with the system prompt.
func (c *ChatService) seedTranscript(userID int) {
	if len(c.sessions.Transcript(userID)) == 0 {
		c.sessions.AppendTranscript(userID, chat.Message{Role: chat.RoleSystem, Content: systemPrompt})
	}
}

// formatSummary renders the statistics block the assistant comments on.
func formatSummary(s Summary) string {
	return fmt.Sprintf(
		"현재 칼로리는 %g kcal입니다. 목표는 %g kcal입니다.\n단백질: %gg / %gg\n탄수화물: %gg / %gg\n지방: %gg / %gg",
		s.Calories, s.Targets.Calories,
		s.Proteins, s.Targets.Proteins,
		s.Carbs, s.Targets.Carbs,
		s.Fats, s.Targets.Fats,
	)
}
