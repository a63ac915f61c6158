package domain

import (
	"encoding/json"
	"time"
)

// SubmissionKind identifies the entry point that produced a submission.
type SubmissionKind string

const (
	KindDemo    SubmissionKind = "demo"
	KindRaw     SubmissionKind = "raw"
	KindDurable SubmissionKind = "durable"
)

// Outcome is the result of one submission attempt.
type Outcome string

const (
	OutcomeSent   Outcome = "sent"
	OutcomeFailed Outcome = "failed"
)

// Receipt carries the exact bytes sent and the distributor's response.
type Receipt struct {
	Sent     json.RawMessage
	Response json.RawMessage
}

// SubmissionEntry is one journaled submission attempt.
type SubmissionEntry struct {
	ID        string
	Kind      SubmissionKind
	PONumber  string
	Parts     []string
	Outcome   Outcome
	Error     string
	CreatedAt time.Time
}
