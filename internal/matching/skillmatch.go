// internal/matching/skillmatch.go
package matching

import (
	"talent-match-workers/internal/common/config"
)

// SkillMatch is the skill sub-score with its required/bonus/missing
// breakdown, in job declaration order.
type SkillMatch struct {
	Score           Score
	MatchedRequired []string
	MatchedBonus    []string
	MissingRequired []string
}

// SkillScorer compares normalized candidate skills against a job's
// required and bonus skill sets.
type SkillScorer struct {
	taxonomy *Taxonomy
	cfg      config.SkillMatchConfig
}

func NewSkillScorer(taxonomy *Taxonomy, cfg config.SkillMatchConfig) *SkillScorer {
	return &SkillScorer{taxonomy: taxonomy, cfg: cfg}
}

// Score computes weighted required coverage with same-category partial
// credit, plus a capped additive reward for matched bonus skills.
// A job with zero required skills scores 1.0 for any candidate: an
// unspecified requirement cannot penalize.
func (s *SkillScorer) Score(candidate []NormalizedSkill, job *JobRequirement) SkillMatch {
	have := make(map[string]NormalizedSkill, len(candidate))
	haveCategory := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		have[skill.Canonical] = skill
		if skill.Category != UncategorizedCategory {
			haveCategory[skill.Category] = true
		}
	}

	match := SkillMatch{
		MatchedRequired: []string{},
		MatchedBonus:    []string{},
		MissingRequired: []string{},
	}

	if len(job.Required) == 0 {
		match.Score = NewScore(1)
		return match
	}

	var totalWeight, credit float64
	for _, req := range job.Required {
		canonical := s.taxonomy.Canonical(req.Name)
		weight := req.Weight
		if weight <= 0 {
			weight = 1
		}
		totalWeight += weight

		if _, ok := have[canonical]; ok {
			credit += weight
			match.MatchedRequired = append(match.MatchedRequired, canonical)
			continue
		}

		match.MissingRequired = append(match.MissingRequired, canonical)
		if category := s.taxonomy.Category(canonical); category != UncategorizedCategory && haveCategory[category] {
			credit += weight * s.cfg.CategoryCredit
		}
	}

	base := credit / totalWeight

	var bonus float64
	for _, name := range job.Bonus {
		canonical := s.taxonomy.Canonical(name)
		if _, ok := have[canonical]; ok {
			match.MatchedBonus = append(match.MatchedBonus, canonical)
			bonus += s.cfg.BonusReward
		}
	}
	if bonus > s.cfg.BonusCap {
		bonus = s.cfg.BonusCap
	}

	match.Score = NewScore(base + bonus)
	return match
}
