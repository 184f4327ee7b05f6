package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	sfpkg "github.com/sells-group/leadgen-cli/pkg/salesforce"
)

// SalesforceExporter writes companies as Salesforce Lead records.
type SalesforceExporter struct {
	client sfpkg.Client
}

// NewSalesforceExporter creates an exporter over the given client.
func NewSalesforceExporter(client sfpkg.Client) *SalesforceExporter {
	return &SalesforceExporter{client: client}
}

// ratingFor maps the intent score to the standard Lead.Rating picklist.
func ratingFor(intent int) string {
	switch {
	case intent >= 60:
		return "Hot"
	case intent >= 30:
		return "Warm"
	default:
		return "Cold"
	}
}

// Push inserts the result's companies as Lead records, skipping any whose
// company name already exists. Returns the number of records inserted.
func (e *SalesforceExporter) Push(ctx context.Context, res *model.Result) (int, error) {
	if len(res.Companies) == 0 {
		return 0, nil
	}

	existing, err := e.existingLeadNames(ctx, res.Companies)
	if err != nil {
		return 0, err
	}

	var records []map[string]any
	for i := range res.Companies {
		c := &res.Companies[i]
		if existing[strings.ToLower(c.Name)] {
			continue
		}
		records = append(records, leadRecord(c, res.Query))
	}
	if len(records) == 0 {
		return 0, nil
	}

	results, err := e.client.InsertCollection(ctx, "Lead", records)
	if err != nil {
		return 0, eris.Wrap(err, "export: insert salesforce leads")
	}

	inserted := 0
	for _, r := range results {
		if r.Success {
			inserted++
			continue
		}
		zap.L().Warn("export: salesforce lead rejected", zap.Strings("errors", r.Errors))
	}
	return inserted, nil
}

// leadNameQuery receives the existing-lead dedupe query results.
type leadNameQuery struct {
	Records []struct {
		Company string
	}
}

func (e *SalesforceExporter) existingLeadNames(ctx context.Context, companies []model.Company) (map[string]bool, error) {
	quoted := make([]string, len(companies))
	for i := range companies {
		quoted[i] = "'" + strings.ReplaceAll(companies[i].Name, "'", `\'`) + "'"
	}
	soql := fmt.Sprintf("SELECT Company FROM Lead WHERE Company IN (%s)", strings.Join(quoted, ","))

	var out leadNameQuery
	if err := e.client.Query(ctx, soql, &out); err != nil {
		return nil, eris.Wrap(err, "export: query existing leads")
	}

	existing := make(map[string]bool, len(out.Records))
	for _, r := range out.Records {
		existing[strings.ToLower(r.Company)] = true
	}
	return existing, nil
}

func leadRecord(c *model.Company, query string) map[string]any {
	record := map[string]any{
		"Company":     c.Name,
		"LastName":    "Unknown",
		"LeadSource":  c.DiscoverySource,
		"Rating":      ratingFor(c.IntentScore),
		"Description": fmt.Sprintf("Query: %s. Intent %d, confidence %d.", query, c.IntentScore, c.ConfidenceScore),
	}
	if c.Website != "" {
		record["Website"] = c.Website
	}
	if len(c.Contacts) > 0 {
		ct := c.Contacts[0]
		record["Email"] = ct.Email
		if ct.LastName != "" {
			record["LastName"] = ct.LastName
		}
		if ct.FirstName != "" {
			record["FirstName"] = ct.FirstName
		}
		if ct.Role != "" {
			record["Title"] = ct.Role
		}
	}
	if c.Enrichment != nil {
		if c.Enrichment.Employees > 0 {
			record["NumberOfEmployees"] = c.Enrichment.Employees
		}
		if c.Enrichment.AnnualRevenue > 0 {
			record["AnnualRevenue"] = c.Enrichment.AnnualRevenue
		}
		if c.Enrichment.Industry != "" {
			record["Industry"] = c.Enrichment.Industry
		}
	}
	return record
}
