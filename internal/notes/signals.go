package notes

import (
	"strings"

	"enduro/internal/store"
)

// bodyParts is the closed set of body-part tokens the injury scanner looks
// for in free text.
var bodyParts = []string{
	"knee", "hip", "ankle", "calf", "hamstring", "quad", "shin",
	"achilles", "foot", "back", "it band", "glute", "shoulder",
}

// injurySeverityKeywords maps a keyword to the severity it implies; when
// several match for the same body part, the highest rank wins.
var injurySeverityKeywords = map[string]store.Severity{
	"tweak":   store.SeverityMild,
	"niggle":  store.SeverityMild,
	"tight":   store.SeverityMild,
	"sore":    store.SeverityMild,
	"strain":  store.SeverityModerate,
	"pain":    store.SeverityModerate,
	"hurts":   store.SeverityModerate,
	"swollen": store.SeverityModerate,
	"sharp":   store.SeveritySevere,
	"tear":    store.SeveritySevere,
	"torn":    store.SeveritySevere,
	"unable":  store.SeveritySevere,
}

// ExtractInjuryFlags scans text for body-part x severity-keyword matches,
// keeping the single highest-severity flag per body part.
func ExtractInjuryFlags(text string) []store.InjuryFlag {
	lower := strings.ToLower(text)

	bestByPart := make(map[string]store.InjuryFlag)
	for _, part := range bodyParts {
		if !strings.Contains(lower, part) {
			continue
		}
		for kw, sev := range injurySeverityKeywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			existing, ok := bestByPart[part]
			if !ok || sev.Worse(existing.Severity) {
				bestByPart[part] = store.InjuryFlag{
					BodyPart:      part,
					Severity:      sev,
					RequiresRest:  sev != store.SeverityMild,
					SourceExcerpt: excerptAround(lower, part),
				}
			}
		}
	}

	flags := make([]store.InjuryFlag, 0, len(bestByPart))
	for _, part := range bodyParts {
		if f, ok := bestByPart[part]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func excerptAround(lower, marker string) string {
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return ""
	}
	start := idx - 20
	if start < 0 {
		start = 0
	}
	end := idx + len(marker) + 20
	if end > len(lower) {
		end = len(lower)
	}
	return strings.TrimSpace(lower[start:end])
}

// illnessPattern is one phrase -> (severity, rest-hours) table row.
type illnessPattern struct {
	phrase    string
	severity  store.Severity
	restHours int
}

var illnessPatterns = []illnessPattern{
	{"chest", store.SeveritySevere, 72},
	{"breathing", store.SeveritySevere, 72},
	{"covid", store.SeveritySevere, 120},
	{"pneumonia", store.SeveritySevere, 168},
	{"fever", store.SeverityModerate, 48},
	{"flu", store.SeverityModerate, 48},
	{"stomach bug", store.SeverityModerate, 24},
	{"cold", store.SeverityMild, 24},
	{"sniffles", store.SeverityMild, 12},
	{"congestion", store.SeverityMild, 12},
}

// ExtractIllnessFlag scans text for the illness pattern table and returns
// the worst-matching pattern, or nil if nothing matched.
func ExtractIllnessFlag(text string) *store.IllnessFlag {
	lower := strings.ToLower(text)

	var best *illnessPattern
	for i, p := range illnessPatterns {
		if strings.Contains(lower, p.phrase) {
			if best == nil || p.severity.Worse(best.severity) {
				best = &illnessPatterns[i]
			}
		}
	}
	if best == nil {
		return nil
	}

	return &store.IllnessFlag{
		Severity:            best.severity,
		RecommendedRestDays: best.restHours / 24,
		SourceExcerpt:       excerptAround(lower, best.phrase),
	}
}
