// internal/workers/matching/analyze-skill-gaps/handler.go
package analyzeskillgaps

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"talent-match-workers/internal/collaborators/knowledgegraph"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
)

const TaskType = "analyze-skill-gaps"

type Handler struct {
	config     *Config
	analyzer   *knowledgegraph.Analyzer
	normalizer *matching.Normalizer
	logger     logger.Logger
}

func NewHandler(config *Config, analyzer *knowledgegraph.Analyzer, taxonomy *matching.Taxonomy, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		analyzer:   analyzer,
		normalizer: matching.NewNormalizer(taxonomy),
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
	held := h.normalizer.Normalize(input.CandidateSkills)

	suggestions, err := h.analyzer.Analyze(ctx, held, input.MissingRequired, input.MissingBonus)
	if err != nil {
		return nil, errors.NewKnowledgeGraphUnavailableError(err)
	}

	h.logger.Info("skill gaps analyzed", map[string]interface{}{
		"missingRequired": len(input.MissingRequired),
		"missingBonus":    len(input.MissingBonus),
		"suggestions":     len(suggestions),
	})

	return &Output{
		Suggestions: suggestions,
		GapCount:    len(suggestions),
	}, nil
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
		stdErr = errors.NewKnowledgeGraphUnavailableError(jobErr)
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
