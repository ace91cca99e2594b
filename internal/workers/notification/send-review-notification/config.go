// internal/workers/notification/send-review-notification/config.go
package sendreviewnotification

import (
	"time"

	"talent-match-workers/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	EmailEnabled     bool
	SMSEnabled       bool
	FromEmail        string
	ReviewerQueue    string
	SMSBandThreshold string
	AWSRegion        string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          15 * time.Second,
		EmailEnabled:     true,
		SMSEnabled:       false,
		SMSBandThreshold: "HUMAN",
		AWSRegion:        "us-east-1",
	}
}

// FromNotificationConfig maps the application-level notification settings
// onto the worker config, keeping LoadConfig defaults for anything unset.
func FromNotificationConfig(notif config.NotificationConfig) *Config {
	cfg := LoadConfig()
	cfg.EmailEnabled = notif.Email.Enabled
	cfg.FromEmail = notif.Email.FromEmail
	cfg.ReviewerQueue = notif.Email.ReviewerQueue
	cfg.SMSEnabled = notif.SMS.Enabled
	if notif.SMS.BandThreshold != "" {
		cfg.SMSBandThreshold = notif.SMS.BandThreshold
	}
	if notif.AWS.Region != "" {
		cfg.AWSRegion = notif.AWS.Region
	}
	return cfg
}
