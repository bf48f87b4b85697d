package jobsift

import (
	"context"
	"time"
)

// RawJob is a single job record exactly as the LLM emitted it: an untyped
// key/value map. It crosses the normalization boundary once and is then
// discarded; everything downstream of the Field Normalizer works with Job.
type RawJob map[string]any

// Job is a normalized job record. Optional fields are either populated or
// entirely absent from serialized output; the two seniority fields are
// always present, defaulting to "Unknown"/"unknown".
type Job struct {
	Title           string `json:"title,omitempty"`
	JobURL          string `json:"job_url,omitempty"`
	Company         string `json:"company,omitempty"`
	Location        string `json:"location,omitempty"`
	TeamOrCategory  string `json:"team_or_category,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	DatePosted      string `json:"date_posted,omitempty"`
	RequisitionID   string `json:"requisition_id,omitempty"`
	OfficeOrRemote  string `json:"office_or_remote,omitempty"`
	SeniorityLevel  string `json:"seniority_level"`
	SeniorityBucket string `json:"seniority_bucket"`

	// Extra holds fields the LLM produced outside the standard schema.
	// Empty values are stripped recursively during normalization.
	Extra map[string]any `json:"extra,omitempty"`
}

// Canonical seniority buckets.
const (
	BucketIntern     = "intern"
	BucketEntry      = "entry"
	BucketMid        = "mid"
	BucketSenior     = "senior"
	BucketDirectorVP = "director_vp"
	BucketExecutive  = "executive"
	BucketUnknown    = "unknown"
)

// SeniorityBuckets is the fixed canonical vocabulary jobs are classified
// into.
var SeniorityBuckets = map[string]bool{
	BucketIntern:     true,
	BucketEntry:      true,
	BucketMid:        true,
	BucketSenior:     true,
	BucketDirectorVP: true,
	BucketExecutive:  true,
	BucketUnknown:    true,
}

// Extraction is the per-page output envelope written as jobs.json. A failed
// extraction still produces an envelope with an empty Jobs list and Error
// set, never a missing file.
type Extraction struct {
	SourceURL string `json:"source_url"`
	PageTitle string `json:"page_title"`
	Jobs      []Job  `json:"jobs"`
	Error     string `json:"error,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// DedupStats summarizes one deduplication pass for observability.
type DedupStats struct {
	InputJobs         int `json:"input_jobs"`
	DedupedOut        int `json:"deduped_out"`
	DuplicatesRemoved int `json:"duplicates_removed"`
}

// JobRow is the persisted upsert unit, keyed by JobURL. FirstSeenAt is set
// once on first sighting and preserved across re-crawls; LastSeenAt is
// refreshed on every sighting.
type JobRow struct {
	JobURL          string         `json:"jobUrl"`
	Title           string         `json:"title"`
	Company         string         `json:"company,omitempty"`
	Location        string         `json:"location,omitempty"`
	TeamOrCategory  string         `json:"teamOrCategory,omitempty"`
	EmploymentType  string         `json:"employmentType,omitempty"`
	DatePostedRaw   string         `json:"datePostedRaw,omitempty"`
	RequisitionID   string         `json:"requisitionId,omitempty"`
	OfficeOrRemote  string         `json:"officeOrRemote,omitempty"`
	SeniorityLevel  string         `json:"seniorityLevel"`
	SeniorityBucket string         `json:"seniorityBucket"`
	SourceDomain    string         `json:"sourceDomain"`
	SourcePageURL   string         `json:"sourcePageUrl,omitempty"`
	SourcePageTitle string         `json:"sourcePageTitle,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
	FirstSeenAt     time.Time      `json:"firstSeenAt"`
	LastSeenAt      time.Time      `json:"lastSeenAt"`
}

// Validate returns an error if the row cannot be persisted.
func (r *JobRow) Validate() error {
	if r.JobURL == "" {
		return Errorf(EINVALID, "job URL required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "job title required")
	}
	return nil
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	JobURL       *string `json:"jobUrl"`
	SourceDomain *string `json:"sourceDomain"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobStore persists job rows. UpsertJobs is idempotent on JobURL. Storage
// failures are reported to the caller, which logs and continues; they are
// never fatal to the extraction pipeline.
type JobStore interface {
	// UpsertJobs inserts or updates rows keyed by job URL, preserving
	// FirstSeenAt for rows that already exist.
	UpsertJobs(ctx context.Context, rows []JobRow) error

	// FindJobs retrieves rows matching the filter, most recently seen first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*JobRow, error)
}
