package extract

// extractionPrompt instructs the model to pull structured job records out of
// a reduced career-page fragment.
const extractionPrompt = `You are an expert at parsing career and job listing websites.
Your input is a reduced HTML fragment that contains the job listings section of a single page.

Goal:
- Extract every UNIQUE job posting from the HTML.
- Preserve the same order in which jobs appear on the page.

Rules:
- Include only real jobs; ignore UI like "Load more", "Apply", "Next page", filters, or search controls.
- Deduplicate: sites sometimes render the same list twice (e.g., SSR + JS re-render, or desktop + mobile).
  Consider jobs duplicates if they share the same job_url, requisition_id, or (title + location) pair.
  Keep only one canonical copy: the version with the most fields filled (date, location, category, etc.).
- Normalize whitespace and strip HTML tags from text fields.
- Do not invent information that clearly contradicts the page, but you MAY infer reasonable details
  (like seniority level or employment type) from the job title and description when they are implied.

For each job, extract these fields (omit if not present), EXCEPT for the seniority fields which must always be included:
- title
- job_url (absolute if available; otherwise the href as-is)
- company (employer name, e.g., Meta, Airbnb; infer from page branding if needed)
- location (string or list)
- team_or_category
- employment_type (e.g., Full-time, Part-time, Internship, Contract). Infer from text when strongly implied.
- date_posted
- requisition_id
- office_or_remote (Remote / Hybrid / Onsite)
- seniority_level: short human-readable label, e.g. "Intern", "New Grad", "Junior", "Mid-level",
  "Senior", "Staff", "Principal", "Director", "VP", "C-level", or "Unknown".
- seniority_bucket: ONE of the following EXACT strings:
    - "intern"       for internships, co-op, apprenticeship
    - "entry"        for new grad, early career, university grad, "junior"
    - "mid"          for mid-level IC roles (e.g., Software Engineer 2-3)
    - "senior"       for senior/staff/principal IC roles
    - "director_vp"  for director, head of X, VP
    - "executive"    for CxO, president, founder, very top leadership
    - "unknown"      when the seniority truly cannot be inferred from the page
- extra (a flat key-value map for any other clearly relevant fields, such as:
  - "job_id"
  - "job_family"
  - "job_function"
  - "job_description" (short text or snippet)
  - "apply_url"
  - or anything else useful that appears in the HTML)

Important:
- Always include BOTH "seniority_level" and "seniority_bucket" for every job:
  - If you are unsure, set seniority_level to "Unknown" and seniority_bucket to "unknown".
- Prefer using what the page says explicitly. If the title or description clearly implies the level
  (for example "University Grad", "New Grad", "Staff Software Engineer", "Director of Engineering"),
  infer the appropriate seniority_level and seniority_bucket.

Also include top-level metadata:
- source_url: the source page URL if provided
- page_title: the page title or heading if available

Output STRICTLY this JSON (no commentary, no markdown fences):

{
  "source_url": "...",
  "page_title": "...",
  "jobs": [
    {
      "title": "...",
      "job_url": "...",
      "company": "...",
      "location": "...",
      "team_or_category": "...",
      "employment_type": "...",
      "date_posted": "...",
      "requisition_id": "...",
      "office_or_remote": "...",
      "seniority_level": "...",
      "seniority_bucket": "...",
      "extra": { "...": "..." }
    }
  ]
}

If a field (other than seniority_level and seniority_bucket) is unknown, omit it entirely
(do not output null or empty strings). For seniority_level and seniority_bucket, always include them;
use "Unknown" / "unknown" when they cannot be inferred.`

// fixerPrompt gives the model a second chance to turn malformed output into
// valid JSON matching the extraction schema.
const fixerPrompt = `You will be given text that should be JSON but may be malformed.
Return ONLY valid JSON that conforms to this structure (omit unknown fields except seniority fields):
{ "source_url": "...", "page_title": "...", "jobs": [ { "title": "...", "job_url": "...", "company": "...", "location": "...", "team_or_category": "...", "employment_type": "...", "date_posted": "...", "requisition_id": "...", "office_or_remote": "...", "seniority_level": "...", "seniority_bucket": "...", "extra": { } } ] }

For seniority_bucket use exactly one of: intern, entry, mid, senior, director_vp, executive, unknown.
Text:
`
