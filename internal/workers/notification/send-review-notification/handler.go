// internal/workers/notification/send-review-notification/handler.go
package sendreviewnotification

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
)

const TaskType = "send-review-notification"

// Interfaces over the AWS clients so tests can stub them out.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		parseErr := errors.NewProfileValidationFailedError(fmt.Sprintf("parse input: %v", err))
		h.failJob(client, job, parseErr)
		return parseErr
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return err
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	// Auto-accepted matches need no reviewer.
	if input.Band == matching.BandAuto {
		h.logger.Info("auto band, no review needed", map[string]interface{}{
			"matchId": input.MatchID,
		})
		return &Output{
			NotificationID: notificationID,
			Status:         StatusSkipped,
			SentAt:         sentAt,
		}, nil
	}

	subject := fmt.Sprintf("Match review needed: %s (%.1f%%)", input.JobTitle, input.Percentage)
	body := h.renderBody(input)

	emailSent := false
	if h.config.EmailEnabled && h.config.ReviewerQueue != "" {
		if err := h.sendEmail(ctx, subject, body); err != nil {
			return nil, errors.NewNotificationSendFailedError("email", err)
		}
		emailSent = true
	}

	smsSent := false
	if h.config.SMSEnabled && input.ReviewerPhone != "" && bandQualifiesForSMS(input.Band, h.config.SMSBandThreshold) {
		if err := h.sendSMS(ctx, input.ReviewerPhone, subject); err != nil {
			return nil, errors.NewNotificationSendFailedError("sms", err)
		}
		smsSent = true
	}

	status := StatusSkipped
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("review notification processed", map[string]interface{}{
		"matchId":   input.MatchID,
		"band":      string(input.Band),
		"emailSent": emailSent,
		"smsSent":   smsSent,
		"status":    status,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		EmailSent:      emailSent,
		SMSSent:        smsSent,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) renderBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", input.CandidateName)
	fmt.Fprintf(&b, "Job: %s (%s)\n", input.JobTitle, input.JobID)
	fmt.Fprintf(&b, "Score: %.1f%% (%s)\n", input.Percentage, input.Band)
	if len(input.Explanations) > 0 {
		b.WriteString("\nScoring notes:\n")
		for _, line := range input.Explanations {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}
	fmt.Fprintf(&b, "\nMatch reference: %s\n", input.MatchID)
	return b.String()
}

// bandQualifiesForSMS gates SMS on how far the match fell. A threshold of
// HUMAN only pages for the lowest band, REVIEW pages for both review bands.
func bandQualifiesForSMS(band matching.Band, threshold string) bool {
	switch matching.Band(threshold) {
	case matching.BandReview:
		return band == matching.BandReview || band == matching.BandHuman
	case matching.BandHuman:
		return band == matching.BandHuman
	default:
		return false
	}
}

func (h *Handler) sendEmail(ctx context.Context, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{h.config.ReviewerQueue},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, jobErr error) {
	var stdErr *errors.StandardError
	if !stderrors.As(jobErr, &stdErr) {
		stdErr = errors.NewNotificationSendFailedError("unknown", jobErr)
	}
	bpmnErr := errors.ConvertToBPMNError(stdErr)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": stdErr.Message,
	})

	if _, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background()); err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}
