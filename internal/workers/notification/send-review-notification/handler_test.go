// internal/workers/notification/send-review-notification/handler_test.go
package sendreviewnotification

import (
	"context"
	"errors"
	"testing"

	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/matching"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "talent-match-workers/internal/common/errors"
)

// ==========================
// Mocks
// ==========================

type MockSESService struct {
	sent []*ses.SendEmailInput
	err  error
}

func (m *MockSESService) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, params)
	return &ses.SendEmailOutput{}, nil
}

type MockSNSService struct {
	published []*sns.PublishInput
	err       error
}

func (m *MockSNSService) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.published = append(m.published, params)
	return &sns.PublishOutput{}, nil
}

func newTestHandler(cfg *Config, sesMock *MockSESService, snsMock *MockSNSService) *Handler {
	return &Handler{
		config:    cfg,
		logger:    logger.NewNoOpLogger(),
		sesClient: sesMock,
		snsClient: snsMock,
	}
}

func testConfig() *Config {
	return &Config{
		EmailEnabled:     true,
		SMSEnabled:       true,
		FromEmail:        "noreply@example.com",
		ReviewerQueue:    "reviewers@example.com",
		SMSBandThreshold: "HUMAN",
	}
}

func reviewInput() *Input {
	return &Input{
		MatchID:       "match-1",
		JobID:         "job-1",
		JobTitle:      "Platform Engineer",
		CandidateName: "Dana",
		Band:          matching.BandReview,
		Percentage:    71.4,
		Explanations:  []string{"key skills: python, aws", "experience: adequate"},
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_ReviewBandSendsEmail(t *testing.T) {
	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(testConfig(), sesMock, snsMock)

	output, err := handler.Execute(context.Background(), reviewInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.NotEmpty(t, output.NotificationID)

	require.Len(t, sesMock.sent, 1)
	email := sesMock.sent[0]
	assert.Equal(t, []string{"reviewers@example.com"}, email.Destination.ToAddresses)
	assert.Contains(t, *email.Message.Subject.Data, "Platform Engineer")
	assert.Contains(t, *email.Message.Subject.Data, "71.4%")

	body := *email.Message.Body.Text.Data
	assert.Contains(t, body, "Candidate: Dana")
	assert.Contains(t, body, "key skills: python, aws")
	assert.Contains(t, body, "match-1")
}

func TestExecute_AutoBandSkipped(t *testing.T) {
	sesMock := &MockSESService{}
	handler := newTestHandler(testConfig(), sesMock, &MockSNSService{})

	input := reviewInput()
	input.Band = matching.BandAuto

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, output.Status)
	assert.Empty(t, sesMock.sent)
}

func TestExecute_HumanBandTriggersSMS(t *testing.T) {
	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(testConfig(), sesMock, snsMock)

	input := reviewInput()
	input.Band = matching.BandHuman
	input.ReviewerPhone = "+15550100"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.True(t, output.SMSSent)
	require.Len(t, snsMock.published, 1)
	assert.Equal(t, "+15550100", *snsMock.published[0].PhoneNumber)
}

func TestExecute_ReviewBandBelowSMSThreshold(t *testing.T) {
	snsMock := &MockSNSService{}
	handler := newTestHandler(testConfig(), &MockSESService{}, snsMock)

	input := reviewInput()
	input.ReviewerPhone = "+15550100"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.False(t, output.SMSSent)
	assert.Empty(t, snsMock.published)
}

func TestExecute_ReviewThresholdCoversBothBands(t *testing.T) {
	cfg := testConfig()
	cfg.SMSBandThreshold = "REVIEW"
	snsMock := &MockSNSService{}
	handler := newTestHandler(cfg, &MockSESService{}, snsMock)

	input := reviewInput()
	input.ReviewerPhone = "+15550100"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.SMSSent)
}

func TestExecute_EmailFailureIsRetryable(t *testing.T) {
	sesMock := &MockSESService{err: errors.New("ses throttled")}
	handler := newTestHandler(testConfig(), sesMock, &MockSNSService{})

	_, err := handler.Execute(context.Background(), reviewInput())
	require.Error(t, err)

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_AllChannelsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false
	handler := newTestHandler(cfg, &MockSESService{}, &MockSNSService{})

	output, err := handler.Execute(context.Background(), reviewInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, output.Status)
	assert.False(t, output.EmailSent)
	assert.False(t, output.SMSSent)
}
