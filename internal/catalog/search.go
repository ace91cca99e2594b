// internal/catalog/search.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/matching"
)

// searcher is the slice of the Elasticsearch client the catalog needs.
type searcher interface {
	Search(ctx context.Context, index, body string) ([]byte, error)
}

// Search serves department and full-text job lookups from the
// Elasticsearch jobs index, for callers that want a filtered job set
// without walking the whole snapshot.
type Search struct {
	es     searcher
	index  string
	logger logger.Logger
}

func NewSearch(es searcher, index string, log logger.Logger) *Search {
	return &Search{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-search"}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source matching.JobRequirement `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ByDepartment returns jobs in the given department, newest first.
func (s *Search) ByDepartment(ctx context.Context, department string, limit int) ([]*matching.JobRequirement, error) {
	body := fmt.Sprintf(`{
		"size": %d,
		"query": {"term": {"department.keyword": %s}}
	}`, limit, mustJSON(department))

	return s.run(ctx, "by_department", body)
}

// ByText matches the query against job title and description.
func (s *Search) ByText(ctx context.Context, query string, limit int) ([]*matching.JobRequirement, error) {
	body := fmt.Sprintf(`{
		"size": %d,
		"query": {"multi_match": {"query": %s, "fields": ["title^2", "description"]}}
	}`, limit, mustJSON(query))

	return s.run(ctx, "by_text", body)
}

func (s *Search) run(ctx context.Context, queryType, body string) ([]*matching.JobRequirement, error) {
	raw, err := s.es.Search(ctx, s.index, body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewSearchTimeoutError(queryType)
		}
		return nil, errors.NewSearchQueryFailedError(queryType, err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(queryType, err)
	}

	jobs := make([]*matching.JobRequirement, 0, len(parsed.Hits.Hits))
	for i := range parsed.Hits.Hits {
		job := parsed.Hits.Hits[i].Source
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
