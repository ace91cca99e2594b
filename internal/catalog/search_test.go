// internal/catalog/search_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"talent-match-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	index    string
	body     string
	response []byte
	err      error
}

func (s *stubSearcher) Search(_ context.Context, index, body string) ([]byte, error) {
	s.index = index
	s.body = body
	return s.response, s.err
}

const sampleHits = `{
	"hits": {
		"hits": [
			{"_source": {"id": "job-1", "title": "DevOps Engineer", "department": "platform", "required": [{"name": "aws", "weight": 1}]}},
			{"_source": {"id": "job-2", "title": "SRE", "department": "platform", "required": [{"name": "kubernetes", "weight": 1}]}}
		]
	}
}`

func TestSearch_ByDepartment(t *testing.T) {
	stub := &stubSearcher{response: []byte(sampleHits)}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	jobs, err := search.ByDepartment(context.Background(), "platform", 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "jobs", stub.index)
	assert.Contains(t, stub.body, `"department.keyword"`)
	assert.Contains(t, stub.body, `"platform"`)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, "SRE", jobs[1].Title)
}

func TestSearch_ByText(t *testing.T) {
	stub := &stubSearcher{response: []byte(sampleHits)}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	jobs, err := search.ByText(context.Background(), "site reliability", 5)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Contains(t, stub.body, `"multi_match"`)
	assert.Contains(t, stub.body, `"site reliability"`)
}

func TestSearch_QueryEscaping(t *testing.T) {
	stub := &stubSearcher{response: []byte(`{"hits": {"hits": []}}`)}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	_, err := search.ByText(context.Background(), `devops "lead" \ engineer`, 5)
	require.NoError(t, err)
	assert.Contains(t, stub.body, `devops \"lead\" \\ engineer`)
}

func TestSearch_SearcherError(t *testing.T) {
	stub := &stubSearcher{err: errors.New("cluster down")}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	_, err := search.ByDepartment(context.Background(), "platform", 10)
	assert.Error(t, err)
}

func TestSearch_MalformedResponse(t *testing.T) {
	stub := &stubSearcher{response: []byte("not json")}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	_, err := search.ByText(context.Background(), "query", 5)
	assert.Error(t, err)
}

func TestSearch_EmptyHits(t *testing.T) {
	stub := &stubSearcher{response: []byte(`{"hits": {"hits": []}}`)}
	search := NewSearch(stub, "jobs", logger.NewNoOpLogger())

	jobs, err := search.ByDepartment(context.Background(), "nowhere", 10)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
