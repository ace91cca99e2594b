// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"talent-match-workers/internal/catalog"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
)

const TaskType = "calculate-match-score"

// MatchRecorder receives per-match telemetry. Satisfied by
// observability.Observability.
type MatchRecorder interface {
	RecordMatchComputed(ctx context.Context, band string)
	RecordMatchDuration(ctx context.Context, duration time.Duration, band string)
}

type Handler struct {
	config   *Config
	engine   *matching.Engine
	catalog  *catalog.Store
	recorder MatchRecorder
	logger   logger.Logger
}

func NewHandler(config *Config, engine *matching.Engine, store *catalog.Store, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		engine:  engine,
		catalog: store,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// WithRecorder attaches per-match telemetry recording.
func (h *Handler) WithRecorder(r MatchRecorder) *Handler {
	h.recorder = r
	return h
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
	if input.Candidate == nil {
		return nil, errors.NewProfileValidationFailedError("candidate profile is required")
	}

	job := input.Job
	if job == nil {
		if input.JobID == "" {
			return nil, errors.NewProfileValidationFailedError("either job or jobId must be provided")
		}
		resolved, err := h.catalog.Job(ctx, input.JobID)
		if err != nil {
			return nil, err
		}
		job = resolved
	}

	matchStart := time.Now()
	result, err := h.engine.Match(ctx, input.Candidate, job)
	if err != nil {
		return nil, errors.NewMatchScoreFailedError(err)
	}

	if h.recorder != nil {
		h.recorder.RecordMatchComputed(ctx, string(result.Band))
		h.recorder.RecordMatchDuration(ctx, time.Since(matchStart), string(result.Band))
	}

	h.logger.Info("match computed", map[string]interface{}{
		"matchId":    result.MatchID,
		"jobId":      result.JobID,
		"percentage": result.Breakdown.Percentage,
		"band":       string(result.Band),
	})

	return &Output{
		MatchID:       result.MatchID,
		JobID:         result.JobID,
		Percentage:    result.Breakdown.Percentage,
		Band:          result.Band,
		Breakdown:     result.Breakdown,
		Gap:           result.Gap,
		PartialResult: result.Breakdown.Partial,
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
		stdErr = errors.NewMatchScoreFailedError(jobErr)
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
