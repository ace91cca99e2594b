// internal/collaborators/knowledgegraph/analyzer.go
package knowledgegraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/matching"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"

	estimatedTimeHigh   = "2-3 months"
	estimatedTimeMedium = "1-2 months"
)

// DefaultSkillLimit caps how many missing skills get suggestions per call.
const DefaultSkillLimit = 3

// Analyzer is the taxonomy-backed skill knowledge graph. For each missing
// skill it produces training resources and, where the candidate already
// holds an adjacent skill, an adjacency rationale. Implements
// matching.GapAnalyzer.
type Analyzer struct {
	taxonomy   *matching.Taxonomy
	skillLimit int
	logger     logger.Logger
}

func NewAnalyzer(taxonomy *matching.Taxonomy, log logger.Logger) *Analyzer {
	return &Analyzer{
		taxonomy:   taxonomy,
		skillLimit: DefaultSkillLimit,
		logger:     log.WithFields(map[string]interface{}{"component": "knowledge-graph"}),
	}
}

// AnalyzeGaps satisfies matching.GapAnalyzer: every skill in missing is a
// required one, so all suggestions carry High priority.
func (a *Analyzer) AnalyzeGaps(ctx context.Context, candidateSkills []matching.NormalizedSkill, missing []string) ([]matching.TrainingSuggestion, error) {
	return a.Analyze(ctx, candidateSkills, missing, nil)
}

// Analyze produces suggestions for missing required skills (High priority)
// followed by missing bonus skills (Medium priority), each group sorted
// alphabetically, capped at the skill limit.
func (a *Analyzer) Analyze(_ context.Context, candidateSkills []matching.NormalizedSkill, missingRequired, missingBonus []string) ([]matching.TrainingSuggestion, error) {
	held := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		held[skill.Canonical] = struct{}{}
	}

	required := uniqueSorted(missingRequired)
	bonus := uniqueSorted(missingBonus)

	suggestions := make([]matching.TrainingSuggestion, 0, a.skillLimit)
	for _, skill := range required {
		if len(suggestions) == a.skillLimit {
			break
		}
		suggestions = append(suggestions, a.suggest(skill, PriorityHigh, held))
	}
	for _, skill := range bonus {
		if len(suggestions) == a.skillLimit {
			break
		}
		suggestions = append(suggestions, a.suggest(skill, PriorityMedium, held))
	}

	return suggestions, nil
}

func (a *Analyzer) suggest(skill, priority string, held map[string]struct{}) matching.TrainingSuggestion {
	canonical := a.taxonomy.Canonical(skill)
	family := a.taxonomy.Resources(canonical)

	display := titleCase(canonical)
	if family.Upper {
		display = strings.ToUpper(canonical)
	}

	resources := make([]string, 0, len(family.Templates))
	for _, template := range family.Templates {
		resources = append(resources, fmt.Sprintf(template, display))
	}

	estimated := estimatedTimeMedium
	if priority == PriorityHigh {
		estimated = estimatedTimeHigh
	}

	return matching.TrainingSuggestion{
		Skill:         display,
		Priority:      priority,
		Resources:     resources,
		EstimatedTime: estimated,
		Rationale:     a.rationale(canonical, held),
	}
}

// rationale names an adjacent skill the candidate already has, when the
// taxonomy places one in the same category as the missing skill.
func (a *Analyzer) rationale(canonical string, held map[string]struct{}) string {
	for _, neighbour := range a.taxonomy.Adjacent(canonical) {
		if _, ok := held[neighbour]; ok {
			return fmt.Sprintf("candidate has %s, adjacent to %s", neighbour, canonical)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func uniqueSorted(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		token := strings.ToLower(strings.TrimSpace(skill))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
