package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jobsift/jobsift"
	"github.com/tailscale/hujson"
)

var (
	fenceOpenRE     = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\n?")
	fenceCloseRE    = regexp.MustCompile("\n?[ \t]*```$")
	ctrlRE          = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	trailingCommaRE = regexp.MustCompile(`,(\s*[\]\}])`)

	smartQuotes = strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"«", `"`,
		"»", `"`,
	)
)

// SanitizeJSON applies best-effort cleanups for the JSON defects LLMs
// commonly produce: markdown code fences, smart quotes, stray control
// characters, and trailing commas.
func SanitizeJSON(text string) string {
	t := strings.TrimSpace(text)
	t = fenceOpenRE.ReplaceAllString(t, "")
	t = fenceCloseRE.ReplaceAllString(t, "")
	t = smartQuotes.Replace(t)
	t = ctrlRE.ReplaceAllString(t, "")
	t = trailingCommaRE.ReplaceAllString(t, "$1")
	return strings.TrimSpace(t)
}

// ParseRobust parses model output into a JSON object, escalating through
// repair strategies: strict parse, sanitize then strict, lenient parse,
// and finally slicing from the first "{" to the last "}". It returns
// EUNPROCESSABLE when every strategy fails.
func ParseRobust(text string) (map[string]any, error) {
	if obj, err := parseStrict(text); err == nil {
		return obj, nil
	}

	sanitized := SanitizeJSON(text)
	if obj, err := parseStrict(sanitized); err == nil {
		return obj, nil
	}
	if obj, err := parseLenient(sanitized); err == nil {
		return obj, nil
	}

	start := strings.Index(sanitized, "{")
	end := strings.LastIndex(sanitized, "}")
	if start >= 0 && end > start {
		sliced := sanitized[start : end+1]
		if obj, err := parseStrict(sliced); err == nil {
			return obj, nil
		}
		if obj, err := parseLenient(sliced); err == nil {
			return obj, nil
		}
	}

	return nil, jobsift.Errorf(jobsift.EUNPROCESSABLE, "unparseable JSON after all repair strategies")
}

func parseStrict(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseLenient accepts JWCC (JSON with comments and trailing commas) by
// standardizing it to plain JSON first.
func parseLenient(text string) (map[string]any, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(std, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
