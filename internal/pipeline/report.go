package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// fallbackTopN limits how many companies the templated analysis lists.
const fallbackTopN = 5

// FallbackAnalysis renders a deterministic markdown summary from the run
// metrics and the top-ranked companies. Used whenever the narrative
// summarizer is unavailable; the caller still gets a populated analysis
// field, just a lower-fidelity one.
func FallbackAnalysis(query string, companies []*model.Company, m model.AggregateMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Business Intelligence Report for %q\n\n", query)

	b.WriteString("### Data Overview\n")
	fmt.Fprintf(&b, "- Sources with data: %d/%d\n", m.SourcesWithData, m.TotalSources)
	fmt.Fprintf(&b, "- Total data points: %d\n", m.TotalDataPoints)
	fmt.Fprintf(&b, "- Companies identified: %d\n", m.CompaniesFound)
	fmt.Fprintf(&b, "- Companies with verified contacts: %d\n", m.CompaniesWithVerifiedContacts)
	fmt.Fprintf(&b, "- Average intent score: %d/100\n", m.AvgIntentScore)
	fmt.Fprintf(&b, "- Data quality: %s\n\n", m.DataQuality)

	if len(companies) > 0 {
		b.WriteString("### Top Companies\n")
		for i, c := range companies {
			if i >= fallbackTopN {
				break
			}
			fmt.Fprintf(&b, "- **%s**: intent %d/100, %d signal(s), %d mention(s)\n",
				c.Name, c.IntentScore, len(c.Signals), c.TotalMentions())
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "*Analysis generated from %d data source(s)*\n", m.SourcesWithData)

	return b.String()
}
