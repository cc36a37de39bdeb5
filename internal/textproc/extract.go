package textproc

import "strings"

// requirementKeywords is the fallback used when a job posting carries no
// bullet points at all.
var requirementKeywords = []string{"requirement", "must have", "qualifications"}

// valueKeywords marks lines that read like mission or culture statements.
var valueKeywords = []string{"mission", "vision", "value", "core values", "principle", "culture"}

// ExtractRequirements returns the bullet-point lines of text ('-' or '*'
// prefixed after trimming), in their original order. When no bullets exist it
// falls back to lines containing one of the requirement keywords. Matching
// lines are trimmed; there is no de-duplication.
func ExtractRequirements(text string) []string {
	lines := strings.Split(text, "\n")

	bullets := make([]string, 0)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			bullets = append(bullets, trimmed)
		}
	}

	if len(bullets) > 0 {
		return bullets
	}

	return matchKeywordLines(lines, requirementKeywords)
}

// ExtractValues returns the lines of text containing a company-value keyword,
// case-insensitively, in their original order.
func ExtractValues(text string) []string {
	return matchKeywordLines(strings.Split(text, "\n"), valueKeywords)
}

func matchKeywordLines(lines, keywords []string) []string {
	matched := make([]string, 0)
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, strings.TrimSpace(line))
				break
			}
		}
	}

	return matched
}
