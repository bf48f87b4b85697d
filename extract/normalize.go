package extract

import (
	"regexp"
	"strings"

	"github.com/jobsift/jobsift"
)

var wsRE = regexp.MustCompile(`\s+`)

// bucketSynonyms maps the seniority labels models actually emit onto the
// canonical bucket vocabulary.
var bucketSynonyms = map[string]string{
	"intern":         jobsift.BucketIntern,
	"internship":     jobsift.BucketIntern,
	"co-op":          jobsift.BucketIntern,
	"coop":           jobsift.BucketIntern,
	"entry":          jobsift.BucketEntry,
	"new grad":       jobsift.BucketEntry,
	"new_grad":       jobsift.BucketEntry,
	"junior":         jobsift.BucketEntry,
	"jr":             jobsift.BucketEntry,
	"mid":            jobsift.BucketMid,
	"mid-level":      jobsift.BucketMid,
	"mid level":      jobsift.BucketMid,
	"midlevel":       jobsift.BucketMid,
	"senior":         jobsift.BucketSenior,
	"sr":             jobsift.BucketSenior,
	"staff":          jobsift.BucketSenior,
	"principal":      jobsift.BucketSenior,
	"director":       jobsift.BucketDirectorVP,
	"vp":             jobsift.BucketDirectorVP,
	"vice president": jobsift.BucketDirectorVP,
	"head":           jobsift.BucketDirectorVP,
	"executive":      jobsift.BucketExecutive,
	"cxo":            jobsift.BucketExecutive,
	"c-level":        jobsift.BucketExecutive,
	"c level":        jobsift.BucketExecutive,
	"ceo":            jobsift.BucketExecutive,
	"cto":            jobsift.BucketExecutive,
	"cfo":            jobsift.BucketExecutive,
}

// standardJobKeys are the schema fields lifted into Job struct fields.
// Anything else the model emits lands in Extra.
var standardJobKeys = map[string]bool{
	"title":            true,
	"job_url":          true,
	"company":          true,
	"location":         true,
	"team_or_category": true,
	"employment_type":  true,
	"date_posted":      true,
	"requisition_id":   true,
	"office_or_remote": true,
	"seniority_level":  true,
	"seniority_bucket": true,
	"extra":            true,
}

// Normalize converts one raw model-emitted job into a normalized Job:
// whitespace collapsed, location canonicalized to a single string, seniority
// fields always populated, empty extras stripped.
func Normalize(raw jobsift.RawJob) jobsift.Job {
	job := jobsift.Job{
		Title:          stringField(raw, "title"),
		JobURL:         stringField(raw, "job_url"),
		Company:        stringField(raw, "company"),
		Location:       canonLocation(raw["location"]),
		TeamOrCategory: stringField(raw, "team_or_category"),
		EmploymentType: stringField(raw, "employment_type"),
		DatePosted:     stringField(raw, "date_posted"),
		RequisitionID:  stringField(raw, "requisition_id"),
		OfficeOrRemote: stringField(raw, "office_or_remote"),
	}

	job.SeniorityBucket = NormalizeBucket(stringField(raw, "seniority_bucket"))
	job.SeniorityLevel = stringField(raw, "seniority_level")
	if job.SeniorityLevel == "" {
		job.SeniorityLevel = "Unknown"
	}

	extra := make(map[string]any)
	if m, ok := raw["extra"].(map[string]any); ok {
		for k, v := range m {
			extra[k] = stripValue(v)
		}
	}
	for k, v := range raw {
		if !standardJobKeys[k] {
			extra[k] = stripValue(v)
		}
	}
	if cleaned := omitEmpty(extra); len(cleaned) > 0 {
		job.Extra = cleaned
	}

	return job
}

// NormalizeBucket maps a raw seniority label to the canonical bucket
// vocabulary, defaulting to "unknown".
func NormalizeBucket(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if b, ok := bucketSynonyms[key]; ok {
		return b
	}
	if jobsift.SeniorityBuckets[key] {
		return key
	}
	return jobsift.BucketUnknown
}

// collapseWS replaces whitespace runs with single spaces and trims.
func collapseWS(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

func stringField(raw jobsift.RawJob, key string) string {
	s, _ := raw[key].(string)
	return collapseWS(s)
}

// canonLocation flattens a location value to a single comma-joined string.
// Models emit either a string or a list of strings.
func canonLocation(v any) string {
	switch loc := v.(type) {
	case string:
		return collapseWS(loc)
	case []any:
		var parts []string
		for _, item := range loc {
			if s, ok := item.(string); ok {
				if cs := collapseWS(s); cs != "" {
					parts = append(parts, cs)
				}
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// stripValue normalizes whitespace recursively through strings, lists and
// maps.
func stripValue(v any) any {
	switch val := v.(type) {
	case string:
		return collapseWS(val)
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, stripValue(item))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = stripValue(item)
		}
		return out
	default:
		return v
	}
}

// omitEmpty drops nil, empty-string, empty-list and empty-map values,
// recursing into nested maps. Non-empty strings like "unknown" survive.
func omitEmpty(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
		case string:
			if s := strings.TrimSpace(val); s != "" {
				out[k] = s
			}
		case []any:
			kept := make([]any, 0, len(val))
			for _, item := range val {
				if !isEmptyValue(item) {
					kept = append(kept, item)
				}
			}
			if len(kept) > 0 {
				out[k] = kept
			}
		case map[string]any:
			if nested := omitEmpty(val); len(nested) > 0 {
				out[k] = nested
			}
		default:
			out[k] = v
		}
	}
	return out
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
