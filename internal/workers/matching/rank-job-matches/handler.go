// internal/workers/matching/rank-job-matches/handler.go
package rankjobmatches

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

const TaskType = "rank-job-matches"

type Handler struct {
	config  *Config
	engine  *matching.Engine
	catalog *catalog.Store
	search  *catalog.Search
	logger  logger.Logger
}

func NewHandler(config *Config, engine *matching.Engine, store *catalog.Store, search *catalog.Search, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		engine:  engine,
		catalog: store,
		search:  search,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	if input.Candidate == nil {
		return nil, errors.NewProfileValidationFailedError("candidate profile is required")
	}

	jobs, version, err := h.resolveJobs(ctx, input)
	if err != nil {
		return nil, err
	}

	results, err := h.engine.MatchBatch(ctx, input.Candidate, jobs)
	if err != nil {
		return nil, errors.NewMatchScoreFailedError(err)
	}

	var matches []*matching.MatchResult
	if input.SortByScore {
		matches = matching.RankedMatches(results)
	} else {
		matches = make([]*matching.MatchResult, 0, len(results))
		for _, result := range results {
			if result != nil {
				matches = append(matches, result)
			}
		}
	}

	topK := input.TopK
	if topK <= 0 {
		topK = h.config.DefaultTopK
	}
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}

	h.logger.Info("jobs ranked", map[string]interface{}{
		"evaluated": len(jobs),
		"returned":  len(matches),
		"sorted":    input.SortByScore,
	})

	return &Output{
		Matches:         matches,
		EvaluatedJobs:   len(jobs),
		SnapshotVersion: version,
	}, nil
}

// resolveJobs turns an explicit ID list into job requirements, queries the
// search index when a department filter is given, or falls back to the full
// catalog snapshot. Unknown IDs are logged and skipped so one stale reference
// does not sink the whole ranking.
func (h *Handler) resolveJobs(ctx context.Context, input *Input) ([]*matching.JobRequirement, string, error) {
	jobIDs := input.JobIDs

	if len(jobIDs) == 0 && input.Department != "" && h.search != nil {
		jobs, err := h.search.ByDepartment(ctx, input.Department, h.config.SearchLimit)
		if err != nil {
			return nil, "", err
		}
		return jobs, "", nil
	}

	if len(jobIDs) == 0 {
		snapshot := h.catalog.Snapshot()
		if snapshot == nil {
			loaded, err := h.catalog.Load(ctx)
			if err != nil {
				return nil, "", err
			}
			snapshot = loaded
		}
		return snapshot.Jobs(), snapshot.Version, nil
	}

	jobs := make([]*matching.JobRequirement, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, err := h.catalog.Job(ctx, id)
		if err != nil {
			var stdErr *errors.StandardError
			if stderrors.As(err, &stdErr) && stdErr.Code == errors.ErrCodeJobNotFound {
				h.logger.Warn("job not in catalog, skipping", map[string]interface{}{
					"jobId": id,
				})
				continue
			}
			return nil, "", err
		}
		jobs = append(jobs, job)
	}
	return jobs, "", nil
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
