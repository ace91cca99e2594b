// internal/catalog/snapshot.go
package catalog

import (
	"time"

	"talent-match-workers/internal/matching"
)

// Snapshot is an immutable, versioned view of the job catalog. Batch
// matching holds one snapshot for its whole run; a concurrent reload
// produces a new version without disturbing in-flight batches.
type Snapshot struct {
	Version  string                     `json:"version"`
	LoadedAt time.Time                  `json:"loadedAt"`
	JobList  []*matching.JobRequirement `json:"jobs"`

	byID map[string]*matching.JobRequirement
}

func newSnapshot(version string, jobs []*matching.JobRequirement) *Snapshot {
	byID := make(map[string]*matching.JobRequirement, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	return &Snapshot{
		Version:  version,
		LoadedAt: time.Now().UTC(),
		JobList:  jobs,
		byID:     byID,
	}
}

// Jobs returns the snapshot's job list in load order. Callers must treat
// the returned records as read-only.
func (s *Snapshot) Jobs() []*matching.JobRequirement {
	return s.JobList
}

// Get returns the job with the given ID, or nil.
func (s *Snapshot) Get(id string) *matching.JobRequirement {
	return s.byID[id]
}

// Len returns the number of jobs in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.JobList)
}

// rebuildIndex restores the ID index after JSON decoding.
func (s *Snapshot) rebuildIndex() {
	s.byID = make(map[string]*matching.JobRequirement, len(s.JobList))
	for _, job := range s.JobList {
		s.byID[job.ID] = job
	}
}
