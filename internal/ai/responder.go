package ai

import (
	"context"
	"fmt"
	"strings"
)

// CannedResponder answers every message with the same text
type CannedResponder struct {
	reply string
}

// NewCannedResponder returns a responder that always replies with reply
func NewCannedResponder(reply string) *CannedResponder {
	return &CannedResponder{reply: reply}
}

// Respond returns the canned reply
func (r *CannedResponder) Respond(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("empty prompt")
	}
	return r.reply, nil
}
