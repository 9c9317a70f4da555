package model

import "time"

// Session is the locally persisted authentication state. There is at
// most one active session at a time.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Activity actions recorded in the local log.
const (
	ActionTrain   = "train"
	ActionDeploy  = "deploy"
	ActionUpload  = "upload"
	ActionPredict = "predict"
	ActionReport  = "report"
)

// Activity is one locally logged operation: who did what to which
// subject, with the model variant when one applies.
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Variant   Variant   `json:"variant,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	DoneBy    string    `json:"done_by"`
	CreatedAt time.Time `json:"created_at"`
}
