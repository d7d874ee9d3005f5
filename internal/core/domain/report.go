package domain

import "time"

// Issue is a ticket read from the tracker.
type Issue struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Status   string    `json:"status"`
	Assignee string    `json:"assignee,omitempty"`
	Updated  time.Time `json:"updated"`
}

// Commit is one entry read from version-control history.
type Commit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Subject string    `json:"subject"`
	When    time.Time `json:"when"`
}

// Message is an unread mail or chat mention.
type Message struct {
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Sent    time.Time `json:"sent"`
}

// Event is a calendar entry.
type Event struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Inbox bundles the mail, calendar, and chat reads collected for a report.
type Inbox struct {
	Mail     []Message `json:"mail"`
	Events   []Event   `json:"events"`
	Mentions []Message `json:"mentions"`
}

// CompletionRequest describes one call to the AI completion service.
// Model and prompt are the logically relevant inputs; credentials are
// deliberately not part of this type so cache keys never include them.
type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Summary pairs a subject (issue key, commit hash) with its generated text.
type Summary struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
