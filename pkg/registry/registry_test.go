// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validRegistry = `{
	"version": "1.0.0",
	"lastUpdated": "2026-08-01T00:00:00Z",
	"activities": [
		{
			"id": "calculate-match-score",
			"displayName": "Calculate Match Score",
			"description": "Scores one candidate against one job",
			"category": "matching",
			"version": "1.0.0",
			"taskType": "calculate-match-score",
			"implementationStatus": "completed",
			"errorCodes": ["MATCH_SCORE_FAILED"],
			"timeout": "10s",
			"retries": 0,
			"tags": ["scoring"]
		}
	]
}`

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, validRegistry)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "calculate-match-score", reg.Activities[0].ID)
	assert.Equal(t, "matching", reg.Activities[0].Category)
}

func TestValidateFile_Valid(t *testing.T) {
	path := writeRegistry(t, validRegistry)
	assert.NoError(t, ValidateFile(path))
}

func TestValidateFile_BadCategory(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-01T00:00:00Z",
		"activities": [
			{
				"id": "calculate-match-score",
				"displayName": "Calculate Match Score",
				"category": "billing",
				"taskType": "calculate-match-score",
				"implementationStatus": "completed"
			}
		]
	}`)

	err := ValidateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestValidateFile_DuplicateID(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-01T00:00:00Z",
		"activities": [
			{"id": "rank-job-matches", "displayName": "Rank", "category": "matching", "taskType": "rank-job-matches", "implementationStatus": "completed"},
			{"id": "rank-job-matches", "displayName": "Rank", "category": "matching", "taskType": "rank-job-matches", "implementationStatus": "completed"}
		]
	}`)

	err := ValidateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate activity ID")
}

func TestValidateFile_EmptyActivities(t *testing.T) {
	path := writeRegistry(t, `{"version": "1.0.0", "lastUpdated": "2026-08-01T00:00:00Z", "activities": []}`)
	assert.Error(t, ValidateFile(path))
}
