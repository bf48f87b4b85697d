// Package jobsift crawls career/job-listing pages, reduces the HTML to
// job-relevant fragments, extracts structured job records with an LLM,
// normalizes and deduplicates the results, and upserts them into a local
// store with first/last-seen tracking.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, gemini/), with the
// crawl/ and extract/ packages providing orchestration.
package jobsift
