// Package extract pulls candidate company entities out of free text using
// surface-pattern rules. Extraction is pure and best-effort: text with no
// recognizable company name yields an empty slice, never an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// textConfidence is the fixed confidence for pattern-derived matches.
const textConfidence = 0.7

// rule pairs a surface pattern with a name so individual rules can be
// tested and reported on separately.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

var rules = []rule{
	// Capitalized phrase ending in a legal or corporate suffix.
	{"legal_suffix", regexp.MustCompile(`[A-Z][a-zA-Z\s]{2,40}(?:Inc|Corp|LLC|Ltd|Company|Solutions|Technologies|Systems|Software|Group|Services|Consulting|Partners|Associates)\.?`)},
	// CamelCase compound proper noun (TechCorp, DataFlow, OpenAI).
	{"camelcase", regexp.MustCompile(`[A-Z][a-z]+[A-Z][a-zA-Z]+(?:[A-Z][a-zA-Z]+)*`)},
	// Capitalized phrase ending in a web TLD.
	{"domain", regexp.MustCompile(`[A-Z][a-zA-Z\s]{2,30}\.(?:com|ca|org|net|io|ai)`)},
	// Capitalized phrase followed by an informal business noun.
	{"business_noun", regexp.MustCompile(`[A-Z][a-zA-Z\s]{2,30}\s+(?i:startup|company|business|firm|agency|studio|labs?|ventures?)`)},
}

// denylist holds generic phrases that pattern-match like company names
// but never are.
var denylist = map[string]struct{}{
	"The Company":   {},
	"Our Company":   {},
	"Your Business": {},
	"This Business": {},
}

// Extract runs every rule over text in order and returns the surviving
// candidates. Rules are applied non-overlapping: a span claimed by an
// earlier rule is invisible to later ones, so "TechFlow Solutions Inc"
// does not also surface a bare "TechFlow". Results are deduplicated by
// normalized name with the first occurrence winning.
func Extract(text string) []model.CandidateEntity {
	var out []model.CandidateEntity
	var claimed [][2]int
	seen := make(map[string]struct{})

	for _, r := range rules {
		for _, span := range r.pattern.FindAllStringIndex(text, -1) {
			if overlaps(claimed, span[0], span[1]) {
				continue
			}
			name := clean(text[span[0]:span[1]])
			if !valid(name) {
				continue
			}
			claimed = append(claimed, [2]int{span[0], span[1]})
			key := model.NormalizeKey(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, model.CandidateEntity{
				Name:           name,
				InferredDomain: inferDomain(name),
				Confidence:     textConfidence,
			})
		}
	}

	return out
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}

func clean(match string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(match), "."))
}

func valid(name string) bool {
	if len(name) <= 3 || len(name) >= 60 {
		return false
	}
	if !strings.ContainsFunc(name, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return false
	}
	if _, banned := denylist[name]; banned {
		return false
	}
	return true
}

// inferDomain resolves a literal domain-like name to a URL, or synthesizes
// a probable one from the alphanumeric name.
func inferDomain(name string) string {
	if strings.Contains(name, ".") {
		website := strings.ToLower(stripSpaces(name))
		if !strings.HasPrefix(website, "http") {
			website = "https://" + website
		}
		return website
	}
	return "https://www." + model.NormalizeKey(name) + ".com"
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
