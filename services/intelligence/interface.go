package ai

import (
	"context"

	"slotboard/models"
)

// ParserService turns a coordinator's free-text availability description
// into proposed slots. Parsing never mutates board state; applying a
// proposal is an explicit, separate create.
type ParserService interface {
	ParseAvailability(ctx context.Context, requesterID string, req models.ParseRequest) (*models.ParseResult, error)
}

// TextModel is the narrow surface the parser needs from the LLM client.
type TextModel interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
