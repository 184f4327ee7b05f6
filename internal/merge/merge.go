// Package merge folds extracted candidate entities into unique company
// records, applies the qualification gate, and backfills placeholder
// companies when extraction yields too little evidence.
package merge

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/intent"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// backfillSuffixes names the synthetic placeholders derived from the query
// term, in order.
var backfillSuffixes = []string{"Solutions", "Group", "Partners"}

// Merger deduplicates candidates by normalized name and gates the result.
type Merger struct {
	gate config.GateConfig
}

// New returns a Merger bound to the given gate thresholds.
func New(gate config.GateConfig) *Merger {
	return &Merger{gate: gate}
}

// Merge runs extraction over every mention in every source collection and
// folds the candidates into unique companies. Sources are walked in
// canonical order so discovery order, and therefore ranking tiebreaks,
// are deterministic. Mention counts only ever increase during a run.
func (mg *Merger) Merge(query string, collections map[model.SourceType][]model.RawMention) []*model.Company {
	byKey := make(map[string]*model.Company)
	var order []string

	for _, src := range model.AllSources() {
		for i := range collections[src] {
			mention := &collections[src][i]
			if mention.Text == "" {
				continue
			}
			for _, cand := range extract.Extract(mention.Text) {
				key := model.NormalizeKey(cand.Name)
				c, ok := byKey[key]
				if !ok {
					c = &model.Company{
						Name:             cand.Name,
						Website:          cand.InferredDomain,
						DiscoverySource:  string(src),
						DiscoveryContext: excerpt(mention.Text, 100),
						Mentions:         make(map[model.SourceType][]*model.RawMention),
						MentionCounts:    make(map[model.SourceType]int),
						Order:            len(order),
					}
					byKey[key] = c
					order = append(order, key)
				}
				c.Mentions[src] = append(c.Mentions[src], mention)
				c.MentionCounts[src]++
			}
		}
	}

	var out []*model.Company
	for _, key := range order {
		if c := byKey[key]; mg.qualified(c) {
			out = append(out, c)
		}
	}

	if len(out) < mg.gate.BackfillBelow {
		out = append(out, mg.backfill(query, collections, len(out))...)
	}

	return out
}

// qualified applies the evidence gate: extraction over free text is noisy,
// so singleton low-confidence hits are suppressed unless at least one
// strong signal backs the company.
func (mg *Merger) qualified(c *model.Company) bool {
	for _, m := range c.Mentions[model.SourceForumPost] {
		if intent.Prescale(m) >= mg.gate.ForumIntentMin {
			return true
		}
		if intent.MentionsBudget(m) {
			return true
		}
	}
	if c.MentionCount(model.SourceNewsArticle) >= mg.gate.NewsMentionsMin {
		return true
	}
	for _, m := range c.Mentions[model.SourceSocialPost] {
		if m.Engagement.Weighted() > mg.gate.SocialEngagementMin {
			return true
		}
	}
	return false
}

// backfill synthesizes placeholder companies from the query term, one per
// source collection that actually produced data, so a run with evidence
// never returns an empty result. Placeholders carry that source's mentions
// as their evidence and are tagged so callers can tell them apart from
// extracted companies.
func (mg *Merger) backfill(query string, collections map[model.SourceType][]model.RawMention, startOrder int) []*model.Company {
	base := titleCase(query)
	if base == "" {
		return nil
	}

	var out []*model.Company
	for _, src := range model.AllSources() {
		if len(collections[src]) == 0 || len(out) >= mg.gate.BackfillCount {
			continue
		}
		name := base + " " + backfillSuffixes[len(out)%len(backfillSuffixes)]
		c := &model.Company{
			Name:             name,
			Website:          "https://www." + model.NormalizeKey(name) + ".com",
			DiscoverySource:  model.DiscoverySourceBackfill,
			DiscoveryContext: fmt.Sprintf("Derived from query: %s", query),
			Mentions:         make(map[model.SourceType][]*model.RawMention),
			MentionCounts:    make(map[model.SourceType]int),
			Order:            startOrder + len(out),
		}
		for i := range collections[src] {
			c.Mentions[src] = append(c.Mentions[src], &collections[src][i])
			c.MentionCounts[src]++
		}
		out = append(out, c)
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[:1])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

func excerpt(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
