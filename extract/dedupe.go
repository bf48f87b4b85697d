package extract

import (
	"strings"

	"github.com/jobsift/jobsift"
)

// signature identifies a job for deduplication: job URL when present, then
// requisition ID, then title plus location.
func signature(j jobsift.Job) string {
	if url := strings.ToLower(j.JobURL); url != "" {
		return "url::" + url
	}
	if rid := strings.ToLower(j.RequisitionID); rid != "" {
		return "rid::" + rid
	}
	return "tl::" + strings.ToLower(j.Title) + "@@" + strings.ToLower(j.Location)
}

// richness counts populated standard fields, plus up to three points for
// extras. Used to pick which duplicate survives.
func richness(j jobsift.Job) int {
	score := 0
	for _, f := range []string{
		j.Title, j.JobURL, j.Company, j.Location, j.TeamOrCategory,
		j.EmploymentType, j.DatePosted, j.RequisitionID, j.OfficeOrRemote,
		j.SeniorityLevel, j.SeniorityBucket,
	} {
		if f != "" {
			score++
		}
	}
	score += min(3, len(j.Extra))
	return score
}

// Dedupe collapses duplicate jobs, keeping the richer copy of each pair and
// preserving first-occurrence order. On a richness tie the earlier copy
// wins.
func Dedupe(jobs []jobsift.Job) ([]jobsift.Job, jobsift.DedupStats) {
	seen := make(map[string]int)
	out := make([]jobsift.Job, 0, len(jobs))
	dupes := 0

	for _, job := range jobs {
		sig := signature(job)
		idx, ok := seen[sig]
		if !ok {
			seen[sig] = len(out)
			out = append(out, job)
			continue
		}
		dupes++
		if richness(job) > richness(out[idx]) {
			out[idx] = job
		}
	}

	return out, jobsift.DedupStats{
		InputJobs:         len(jobs),
		DedupedOut:        len(out),
		DuplicatesRemoved: dupes,
	}
}

// NormalizeAndDedupe converts a parsed model response into a normalized,
// deduplicated extraction envelope. Non-object entries in the jobs list are
// skipped.
func NormalizeAndDedupe(parsed map[string]any) (*jobsift.Extraction, jobsift.DedupStats) {
	sourceURL, _ := parsed["source_url"].(string)
	pageTitle, _ := parsed["page_title"].(string)

	rawJobs, _ := parsed["jobs"].([]any)
	jobs := make([]jobsift.Job, 0, len(rawJobs))
	for _, entry := range rawJobs {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		jobs = append(jobs, Normalize(jobsift.RawJob(raw)))
	}

	deduped, stats := Dedupe(jobs)
	stats.InputJobs = len(rawJobs)

	return &jobsift.Extraction{
		SourceURL: collapseWS(sourceURL),
		PageTitle: collapseWS(pageTitle),
		Jobs:      deduped,
	}, stats
}
