package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll fetches every page from a Notion database, following cursors.
// Rate limiting is enforced by the Client (3 req/s by default).
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	req := &notionapi.DatabaseQueryRequest{}
	if filter != nil {
		req.Filter = filter.Filter
		req.Sorts = filter.Sorts
		req.PageSize = filter.PageSize
	}

	var all []notionapi.Page
	for {
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all page")
		}
		all = append(all, resp.Results...)
		if !resp.HasMore {
			return all, nil
		}
		req.StartCursor = resp.NextCursor
	}
}

// PageTitle returns the plain-text title of a page, or "" when the page has
// no title property.
func PageTitle(p notionapi.Page) string {
	for _, prop := range p.Properties {
		tp, ok := prop.(*notionapi.TitleProperty)
		if !ok {
			continue
		}
		title := ""
		for _, rt := range tp.Title {
			title += rt.PlainText
		}
		return title
	}
	return ""
}
