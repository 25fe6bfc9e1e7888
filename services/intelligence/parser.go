// Package ai extracts availability slots from free text ("Dana can do
// Tuesday 9-12 and Thursday afternoon") via Gemini. Output is strictly
// validated; a response that fails validation is an error and nothing
// reaches the board.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"slotboard/models"
)

const parsePrompt = `You extract interviewer availability from text.
Return ONLY a JSON array, no prose, no markdown. Each element:
{"ownerName": string, "date": "YYYY-MM-DD", "startTime": "HH:MM", "endTime": "HH:MM"}
Times are 24-hour with minute precision. When the text omits the year, use %d.
If no availability can be extracted, return [].

Text:
%s`

type DefaultParserService struct {
	model TextModel
	cache *RedisParseCache
}

func NewDefaultParserService(model TextModel, cache *RedisParseCache) *DefaultParserService {
	return &DefaultParserService{model: model, cache: cache}
}

func (s *DefaultParserService) ParseAvailability(ctx context.Context, requesterID string, req models.ParseRequest) (*models.ParseResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("parse: empty text")
	}
	year := req.ReferenceYear
	if year == 0 {
		year = time.Now().Year()
	}

	if s.cache != nil {
		if proposals, ok := s.cache.Get(ctx, requesterID, req.Text); ok {
			return &models.ParseResult{Proposals: proposals}, nil
		}
	}

	raw, err := s.model.GenerateContent(ctx, fmt.Sprintf(parsePrompt, year, req.Text))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	proposals, err := decodeProposals(raw)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, requesterID, req.Text, proposals); err != nil {
			// Cache writes are best-effort; the parse result stands.
			_ = err
		}
	}
	return &models.ParseResult{Proposals: proposals, RawText: raw}, nil
}

// decodeProposals parses and validates the model output. Models wrap JSON in
// code fences often enough that stripping them is part of the contract.
func decodeProposals(raw string) ([]models.ProposedSlot, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var proposals []models.ProposedSlot
	if err := json.Unmarshal([]byte(text), &proposals); err != nil {
		return nil, fmt.Errorf("parse: model returned unparseable output: %w", err)
	}

	for i, p := range proposals {
		if strings.TrimSpace(p.OwnerName) == "" {
			return nil, fmt.Errorf("parse: proposal %d missing ownerName", i)
		}
		if _, err := time.Parse(models.DateLayout, p.Date); err != nil {
			return nil, fmt.Errorf("parse: proposal %d has bad date %q", i, p.Date)
		}
		start, err := models.ParseClock(p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parse: proposal %d: %w", i, err)
		}
		end, err := models.ParseClock(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("parse: proposal %d: %w", i, err)
		}
		if start >= end {
			return nil, fmt.Errorf("parse: proposal %d has inverted range %s-%s", i, p.StartTime, p.EndTime)
		}
	}
	return proposals, nil
}
