package models

// ProposedSlot is one availability block extracted from free text by the AI
// parser. Proposals are suggestions only; nothing is persisted until the
// coordinator confirms each one through the normal create path.
type ProposedSlot struct {
	OwnerName string `json:"ownerName"`
	Date      string `json:"date"`      // "2006-01-02"
	StartTime string `json:"startTime"` // "15:04"
	EndTime   string `json:"endTime"`
}

// ParseRequest carries the coordinator's free-text availability description.
type ParseRequest struct {
	Text          string `json:"text" binding:"required"`
	ReferenceYear int    `json:"referenceYear"`
}

// ParseResult is the parser's output plus the raw model text for debugging.
type ParseResult struct {
	Proposals []ProposedSlot `json:"proposals"`
	RawText   string         `json:"-"`
}
