package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var _ jobsift.JobStore = (*JobStore)(nil)

// JobStore implements jobsift.JobStore using SQLite. Rows are keyed by job
// URL; re-seeing a known URL refreshes everything except first_seen_at.
type JobStore struct {
	db *DB
}

// NewJobStore creates a new JobStore.
func NewJobStore(db *DB) *JobStore {
	return &JobStore{db: db}
}

// UpsertJobs inserts or updates rows keyed by job URL. All rows are written
// in a single transaction; a row that fails validation aborts the batch.
func (s *JobStore) UpsertJobs(ctx context.Context, rows []jobsift.JobRow) error {
	if len(rows) == 0 {
		return nil
	}

	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range rows {
		row := &rows[i]

		extra := ""
		if len(row.Extra) > 0 {
			data, err := json.Marshal(row.Extra)
			if err != nil {
				return jobsift.Errorf(jobsift.EINTERNAL, "marshal job extra: %v", err)
			}
			extra = string(data)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO jobs (
				job_url, title, company, location, team_or_category,
				employment_type, date_posted_raw, requisition_id, office_or_remote,
				seniority_level, seniority_bucket, source_domain, source_page_url,
				source_page_title, extra, first_seen_at, last_seen_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(job_url) DO UPDATE SET
				title = excluded.title,
				company = excluded.company,
				location = excluded.location,
				team_or_category = excluded.team_or_category,
				employment_type = excluded.employment_type,
				date_posted_raw = excluded.date_posted_raw,
				requisition_id = excluded.requisition_id,
				office_or_remote = excluded.office_or_remote,
				seniority_level = excluded.seniority_level,
				seniority_bucket = excluded.seniority_bucket,
				source_domain = excluded.source_domain,
				source_page_url = excluded.source_page_url,
				source_page_title = excluded.source_page_title,
				extra = excluded.extra,
				last_seen_at = excluded.last_seen_at
		`, row.JobURL, row.Title, row.Company, row.Location, row.TeamOrCategory,
			row.EmploymentType, row.DatePostedRaw, row.RequisitionID, row.OfficeOrRemote,
			row.SeniorityLevel, row.SeniorityBucket, row.SourceDomain, row.SourcePageURL,
			row.SourcePageTitle, extra, now, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindJobs retrieves rows matching the filter, most recently seen first.
func (s *JobStore) FindJobs(ctx context.Context, filter jobsift.JobFilter) ([]*jobsift.JobRow, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT job_url, title, company, location, team_or_category,
		employment_type, date_posted_raw, requisition_id, office_or_remote,
		seniority_level, seniority_bucket, source_domain, source_page_url,
		source_page_title, extra, first_seen_at, last_seen_at
		FROM jobs WHERE 1=1`)

	if filter.JobURL != nil {
		query.WriteString(" AND job_url = ?")
		args = append(args, *filter.JobURL)
	}
	if filter.SourceDomain != nil {
		query.WriteString(" AND source_domain = ?")
		args = append(args, *filter.SourceDomain)
	}

	query.WriteString(" ORDER BY last_seen_at DESC, job_url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	sqlRows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer sqlRows.Close()

	var jobs []*jobsift.JobRow
	for sqlRows.Next() {
		var row jobsift.JobRow
		var extra, firstSeen, lastSeen string

		if err := sqlRows.Scan(&row.JobURL, &row.Title, &row.Company, &row.Location,
			&row.TeamOrCategory, &row.EmploymentType, &row.DatePostedRaw,
			&row.RequisitionID, &row.OfficeOrRemote, &row.SeniorityLevel,
			&row.SeniorityBucket, &row.SourceDomain, &row.SourcePageURL,
			&row.SourcePageTitle, &extra, &firstSeen, &lastSeen); err != nil {
			return nil, err
		}

		if extra != "" {
			if err := json.Unmarshal([]byte(extra), &row.Extra); err != nil {
				return nil, jobsift.Errorf(jobsift.EINTERNAL, "unmarshal job extra: %v", err)
			}
		}

		if row.FirstSeenAt, err = parseRFC3339(firstSeen, "first_seen_at"); err != nil {
			return nil, err
		}
		if row.LastSeenAt, err = parseRFC3339(lastSeen, "last_seen_at"); err != nil {
			return nil, err
		}

		jobs = append(jobs, &row)
	}

	return jobs, sqlRows.Err()
}
