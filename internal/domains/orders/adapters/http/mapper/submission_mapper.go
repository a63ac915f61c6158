package mapper

import (
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// Submission is the HTTP representation of a journaled submission attempt.
type Submission struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	PONumber  string   `json:"poNumber,omitempty"`
	Parts     []string `json:"parts"`
	Outcome   string   `json:"outcome"`
	Error     string   `json:"error,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

// FromSubmission converts a journal entry to its HTTP form.
func FromSubmission(e domain.SubmissionEntry) Submission {
	parts := e.Parts
	if parts == nil {
		parts = []string{}
	}
	return Submission{
		ID:        e.ID,
		Kind:      string(e.Kind),
		PONumber:  e.PONumber,
		Parts:     parts,
		Outcome:   string(e.Outcome),
		Error:     e.Error,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// FromSubmissionList converts entries preserving order. It never returns nil.
func FromSubmissionList(entries []domain.SubmissionEntry) []Submission {
	out := make([]Submission, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromSubmission(e))
	}
	return out
}
