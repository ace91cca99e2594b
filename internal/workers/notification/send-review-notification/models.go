// internal/workers/notification/send-review-notification/models.go
package sendreviewnotification

import "talent-match-workers/internal/matching"

type Input struct {
	MatchID       string        `json:"matchId"`
	JobID         string        `json:"jobId"`
	JobTitle      string        `json:"jobTitle"`
	CandidateName string        `json:"candidateName"`
	Band          matching.Band `json:"band"`
	Percentage    float64       `json:"percentage"`
	Explanations  []string      `json:"explanations,omitempty"`
	ReviewerPhone string        `json:"reviewerPhone,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"sentAt"`
}

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)
