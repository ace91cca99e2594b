// internal/workers/matching/validate-candidate-profile/handler.go
package validatecandidateprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
)

const TaskType = "validate-candidate-profile"

// Handler sanitizes candidate profiles ahead of scoring. Validation is
// advisory: malformed fields are repaired or dropped with a warning, and the
// job only fails when the variables cannot be parsed at all.
type Handler struct {
	config     *Config
	normalizer *matching.Normalizer
	taxonomy   *matching.Taxonomy
	logger     logger.Logger
}

func NewHandler(config *Config, taxonomy *matching.Taxonomy, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		normalizer: matching.NewNormalizer(taxonomy),
		taxonomy:   taxonomy,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
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

	output := h.execute(ctx, &input)

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) *Output {
	warnings := []string{}

	if input.Candidate == nil {
		return &Output{
			Candidate:        &matching.CandidateProfile{},
			NormalizedSkills: []matching.NormalizedSkill{},
			Warnings:         append(warnings, "candidate profile missing"),
			InsufficientData: true,
		}
	}

	candidate := *input.Candidate
	candidate.Name = strings.TrimSpace(candidate.Name)

	normalized := h.normalizer.Normalize(candidate.Skills)
	if len(normalized) < len(candidate.Skills) {
		warnings = append(warnings, "duplicate or empty skill entries dropped")
	}

	skills := make([]string, 0, len(normalized))
	unknown := []string{}
	for _, skill := range normalized {
		skills = append(skills, skill.Canonical)
		if skill.Category == matching.UncategorizedCategory {
			unknown = append(unknown, skill.Canonical)
		}
	}
	candidate.Skills = skills
	if len(unknown) > 0 {
		warnings = append(warnings, "unrecognized skills: "+strings.Join(unknown, ", "))
	}

	if candidate.YearsExperience != nil && *candidate.YearsExperience < 0 {
		warnings = append(warnings, "negative years of experience treated as unknown")
		candidate.YearsExperience = nil
	}

	freeText := make([]string, 0, len(candidate.FreeText))
	for _, text := range candidate.FreeText {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			freeText = append(freeText, trimmed)
		}
	}
	candidate.FreeText = freeText

	insufficient := len(candidate.Skills) == 0 && len(candidate.FreeText) == 0
	if insufficient {
		warnings = append(warnings, "no skills or free text, scoring will be neutral")
	}

	h.logger.Info("profile validated", map[string]interface{}{
		"skills":           len(candidate.Skills),
		"warnings":         len(warnings),
		"insufficientData": insufficient,
	})

	return &Output{
		Candidate:        &candidate,
		NormalizedSkills: normalized,
		Warnings:         warnings,
		InsufficientData: insufficient,
	}
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, jobErr *errors.StandardError) {
	bpmnErr := errors.ConvertToBPMNError(jobErr)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(jobErr.Code)).Inc()

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": jobErr.Message,
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
