// Package export writes scored companies to outbound destinations: an XLSX
// workbook, a Notion lead database, and Salesforce.
package export

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/notion"
)

// NotionExporter pushes companies into a Notion database, one page per
// company, keyed by the page title.
type NotionExporter struct {
	client notion.Client
	dbID   string
}

// NewNotionExporter creates an exporter targeting the given database.
func NewNotionExporter(client notion.Client, dbID string) *NotionExporter {
	return &NotionExporter{client: client, dbID: dbID}
}

// Push upserts every company from the result. Existing pages are matched by
// title; unmatched companies become new pages. Returns the number of pages
// written.
func (e *NotionExporter) Push(ctx context.Context, res *model.Result) (int, error) {
	pages, err := notion.QueryAll(ctx, e.client, e.dbID, nil)
	if err != nil {
		return 0, eris.Wrap(err, "export: list notion pages")
	}
	existing := make(map[string]notionapi.ObjectID, len(pages))
	for _, p := range pages {
		if title := notion.PageTitle(p); title != "" {
			existing[title] = p.ID
		}
	}

	written := 0
	for i := range res.Companies {
		c := &res.Companies[i]
		props := companyProperties(c, res.Query)

		if pageID, ok := existing[c.Name]; ok {
			_, err = e.client.UpdatePage(ctx, string(pageID), &notionapi.PageUpdateRequest{Properties: props})
		} else {
			_, err = e.client.CreatePage(ctx, &notionapi.PageCreateRequest{
				Parent: notionapi.Parent{
					Type:       notionapi.ParentTypeDatabaseID,
					DatabaseID: notionapi.DatabaseID(e.dbID),
				},
				Properties: props,
			})
		}
		if err != nil {
			zap.L().Warn("export: notion push failed",
				zap.String("company", c.Name),
				zap.Error(err),
			)
			continue
		}
		written++
	}
	return written, nil
}

func companyProperties(c *model.Company, query string) notionapi.Properties {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: c.Name}}},
		},
		"Intent Score": &notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(c.IntentScore),
		},
		"Confidence": &notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(c.ConfidenceScore),
		},
		"Query": &notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: query}}},
		},
		"Discovery Source": &notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: c.DiscoverySource},
		},
	}
	if c.Website != "" {
		props["Website"] = &notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  c.Website,
		}
	}
	if len(c.Contacts) > 0 {
		props["Primary Contact"] = &notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: c.Contacts[0].Email}}},
		}
	}
	return props
}
