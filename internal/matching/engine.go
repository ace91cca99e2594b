// internal/matching/engine.go
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"

	"github.com/google/uuid"
)

// Engine runs the full scoring pipeline for one (candidate, job) pair.
// All shared state (taxonomy, config) is immutable after construction, so
// any number of Match calls may run concurrently.
type Engine struct {
	normalizer *Normalizer
	semantic   *SemanticScorer
	skills     *SkillScorer
	experience *ExperienceScorer
	lexical    *LexicalScorer
	combiner   *Combiner
	router     *Router
	batchSize  int
	logger     logger.Logger
}

func NewEngine(
	cfg config.MatchingConfig,
	taxonomy *Taxonomy,
	provider EmbeddingProvider,
	gap GapAnalyzer,
	log logger.Logger,
) *Engine {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Engine{
		normalizer: NewNormalizer(taxonomy),
		semantic:   NewSemanticScorer(provider),
		skills:     NewSkillScorer(taxonomy, cfg.SkillMatch),
		experience: NewExperienceScorer(cfg.Experience),
		lexical:    NewLexicalScorer(),
		combiner:   NewCombiner(cfg.Weights, log),
		router:     NewRouter(cfg.Bands, gap, log),
		batchSize:  batchSize,
		logger:     log,
	}
}

// Match scores one candidate against one job. A structurally insufficient
// candidate (no skills and no free text) produces a neutral result flagged
// "insufficient data" rather than an error, so a reviewer still sees
// something. Collaborator failures degrade to partial scoring.
func (e *Engine) Match(ctx context.Context, candidate *CandidateProfile, job *JobRequirement) (*MatchResult, error) {
	if candidate == nil {
		return nil, fmt.Errorf("nil candidate profile")
	}
	if job == nil {
		return nil, fmt.Errorf("nil job requirement")
	}

	if len(candidate.Skills) == 0 && !hasText(candidate.FreeText) {
		return e.insufficientDataResult(ctx, candidate, job), nil
	}

	candidateSkills := e.normalizer.Normalize(candidate.Skills)
	candidateText := candidateFreeText(candidate, candidateSkills)
	jobText := jobFreeText(job)

	signals := SignalSet{}

	semantic, err := e.semantic.Score(ctx, candidateText, jobText)
	if err != nil {
		e.logger.Warn("semantic signal unavailable, renormalizing weights", map[string]interface{}{
			"jobId": job.ID,
			"error": err,
		})
		metrics.MatchPartialScoring.Inc()
		signals.Missing = append(signals.Missing, SignalSemantic)
	} else {
		signals.Semantic = semantic
	}

	skillMatch := e.skills.Score(candidateSkills, job)
	signals.Skill = skillMatch.Score

	experienceScore, experienceFit := e.experience.Score(candidate.YearsExperience, job)
	signals.Experience = experienceScore

	signals.Lexical = e.lexical.Score(candidateText, jobText)

	breakdown := e.combiner.Combine(signals)
	breakdown.MatchedRequired = skillMatch.MatchedRequired
	breakdown.MatchedBonus = skillMatch.MatchedBonus
	breakdown.MissingRequired = skillMatch.MissingRequired
	breakdown.ExperienceFit = experienceFit

	band, suggestions := e.router.Route(ctx, candidateSkills, breakdown)
	metrics.MatchComputations.WithLabelValues(string(band)).Inc()

	return &MatchResult{
		MatchID:       uuid.New().String(),
		JobID:         job.ID,
		CandidateName: candidate.Name,
		Breakdown:     *breakdown,
		Band:          band,
		Gap:           suggestions,
	}, nil
}

// MatchBatch scores one candidate against many jobs in parallel. Result
// ordering mirrors the input job ordering; each worker writes only its own
// index, so no shared accumulator exists. One pair's failure never aborts
// siblings: a nil job slot yields a nil result slot.
func (e *Engine) MatchBatch(ctx context.Context, candidate *CandidateProfile, jobs []*JobRequirement) ([]*MatchResult, error) {
	if candidate == nil {
		return nil, fmt.Errorf("nil candidate profile")
	}

	results := make([]*MatchResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	workers := e.batchSize
	if workers > len(jobs) {
		workers = len(jobs)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				result, err := e.Match(ctx, candidate, jobs[i])
				if err != nil {
					e.logger.Error("match failed, skipping pair", map[string]interface{}{
						"jobIndex": i,
						"error":    err,
					})
					continue
				}
				results[i] = result
			}
		}()
	}

	for i := range jobs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results, nil
}

// RankedMatches returns a copy of results sorted by percentage descending.
// Sorting is an explicit caller opt-in; MatchBatch itself preserves input
// order.
func RankedMatches(results []*MatchResult) []*MatchResult {
	ranked := make([]*MatchResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			ranked = append(ranked, result)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Percentage > ranked[j].Breakdown.Percentage
	})
	return ranked
}

// insufficientDataResult builds the neutral result for a candidate record
// missing all scorable fields.
func (e *Engine) insufficientDataResult(ctx context.Context, candidate *CandidateProfile, job *JobRequirement) *MatchResult {
	e.logger.Warn("candidate record has no skills and no text", map[string]interface{}{
		"candidate": candidate.Name,
		"jobId":     job.ID,
	})

	signals := SignalSet{
		Experience: NewScore(e.experience.cfg.UnknownDefault),
		Missing:    []string{SignalSemantic},
	}
	breakdown := e.combiner.Combine(signals)
	breakdown.MatchedRequired = []string{}
	breakdown.MatchedBonus = []string{}
	breakdown.MissingRequired = missingFromJob(e.skills.taxonomy, job)
	breakdown.ExperienceFit = ExperienceAdequate
	breakdown.Explanations = append(breakdown.Explanations, "insufficient data: candidate has no skills or text")

	band, _ := e.router.Route(ctx, nil, breakdown)
	metrics.MatchComputations.WithLabelValues(string(band)).Inc()

	return &MatchResult{
		MatchID:       uuid.New().String(),
		JobID:         job.ID,
		CandidateName: candidate.Name,
		Breakdown:     *breakdown,
		Band:          band,
	}
}

func missingFromJob(taxonomy *Taxonomy, job *JobRequirement) []string {
	missing := make([]string, 0, len(job.Required))
	for _, req := range job.Required {
		missing = append(missing, taxonomy.Canonical(req.Name))
	}
	return missing
}

func hasText(sections []string) bool {
	for _, section := range sections {
		if strings.TrimSpace(section) != "" {
			return true
		}
	}
	return false
}

// candidateFreeText joins the candidate's text sections and canonical
// skills into one embedding/lexical input.
func candidateFreeText(candidate *CandidateProfile, skills []NormalizedSkill) string {
	parts := make([]string, 0, len(candidate.FreeText)+len(skills))
	for _, section := range candidate.FreeText {
		if strings.TrimSpace(section) != "" {
			parts = append(parts, section)
		}
	}
	for _, skill := range skills {
		parts = append(parts, skill.Canonical)
	}
	return strings.Join(parts, " ")
}

// jobFreeText builds the job-side embedding/lexical input. The title is
// repeated to weight it above individual skill tokens.
func jobFreeText(job *JobRequirement) string {
	parts := []string{job.Title, job.Title, job.Description}
	for _, req := range job.Required {
		parts = append(parts, req.Name)
	}
	parts = append(parts, job.Bonus...)
	return strings.Join(parts, " ")
}
