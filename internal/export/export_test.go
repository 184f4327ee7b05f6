package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadgen-cli/internal/model"
	sfpkg "github.com/sells-group/leadgen-cli/pkg/salesforce"
)

func sampleResult() *model.Result {
	return &model.Result{
		Query: "saas startups toronto",
		Companies: []model.Company{
			{
				Name:            "TechFlow Solutions",
				Website:         "https://www.techflowsolutions.com",
				DiscoverySource: "forum_post",
				IntentScore:     72,
				ConfidenceScore: 85,
				MentionCounts:   map[model.SourceType]int{model.SourceForumPost: 3},
				Signals: []model.Signal{
					{Type: "forum_high_intent", Score: 30, Confidence: 0.9},
				},
				Contacts: []model.Contact{
					{Email: "ceo@techflowsolutions.com", FirstName: "Dana", LastName: "Reyes", Role: "CEO", Confidence: 93, Source: "hunter.io"},
				},
				Enrichment: &model.Enrichment{Employees: 45, Industry: "Software", Location: "Toronto, Ontario, Canada"},
			},
			{
				Name:            "BrightPath Consulting",
				DiscoverySource: "news_article",
				IntentScore:     25,
				ConfidenceScore: 70,
			},
		},
	}
}

func notionPageWithTitle(id, title string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{{PlainText: title}},
			},
		},
	}
}

func TestNotionPush_CreatesAndUpdates(t *testing.T) {
	mc := new(mockNotionClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(&notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{notionPageWithTitle("page-1", "TechFlow Solutions")},
		}, nil)
	mc.On("UpdatePage", ctx, "page-1", mock.AnythingOfType("*notionapi.PageUpdateRequest")).
		Return(&notionapi.Page{}, nil)
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		tp, ok := req.Properties["Name"].(*notionapi.TitleProperty)
		return ok && tp.Title[0].Text.Content == "BrightPath Consulting"
	})).Return(&notionapi.Page{}, nil)

	written, err := NewNotionExporter(mc, "db-1").Push(ctx, sampleResult())

	require.NoError(t, err)
	assert.Equal(t, 2, written)
	mc.AssertExpectations(t)
}

func TestNotionPush_PartialFailure(t *testing.T) {
	mc := new(mockNotionClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-1", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(&notionapi.DatabaseQueryResponse{}, nil)
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		tp, ok := req.Properties["Name"].(*notionapi.TitleProperty)
		return ok && tp.Title[0].Text.Content == "TechFlow Solutions"
	})).Return(nil, assert.AnError)
	mc.On("CreatePage", ctx, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		tp, ok := req.Properties["Name"].(*notionapi.TitleProperty)
		return ok && tp.Title[0].Text.Content == "BrightPath Consulting"
	})).Return(&notionapi.Page{}, nil)

	written, err := NewNotionExporter(mc, "db-1").Push(ctx, sampleResult())

	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestSalesforcePush_SkipsExisting(t *testing.T) {
	mc := new(mockSalesforceClient)
	ctx := context.Background()

	mc.On("Query", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*export.leadNameQuery")).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*leadNameQuery)
			out.Records = append(out.Records, struct{ Company string }{Company: "techflow solutions"})
		}).
		Return(nil)
	mc.On("InsertCollection", ctx, "Lead", mock.MatchedBy(func(records []map[string]any) bool {
		return len(records) == 1 && records[0]["Company"] == "BrightPath Consulting"
	})).Return([]sfpkg.CollectionResult{{ID: "sf-1", Success: true}}, nil)

	inserted, err := NewSalesforceExporter(mc).Push(ctx, sampleResult())

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	mc.AssertExpectations(t)
}

func TestSalesforcePush_LeadRecordFields(t *testing.T) {
	res := sampleResult()
	record := leadRecord(&res.Companies[0], res.Query)

	assert.Equal(t, "TechFlow Solutions", record["Company"])
	assert.Equal(t, "Reyes", record["LastName"])
	assert.Equal(t, "ceo@techflowsolutions.com", record["Email"])
	assert.Equal(t, "CEO", record["Title"])
	assert.Equal(t, "Hot", record["Rating"])
	assert.Equal(t, 45, record["NumberOfEmployees"])
	assert.Equal(t, "Software", record["Industry"])
}

func TestSalesforcePush_Empty(t *testing.T) {
	mc := new(mockSalesforceClient)

	inserted, err := NewSalesforceExporter(mc).Push(context.Background(), &model.Result{Query: "q"})

	require.NoError(t, err)
	assert.Zero(t, inserted)
	mc.AssertNotCalled(t, "InsertCollection")
}

func TestRatingFor(t *testing.T) {
	assert.Equal(t, "Hot", ratingFor(60))
	assert.Equal(t, "Warm", ratingFor(45))
	assert.Equal(t, "Cold", ratingFor(10))
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")

	require.NoError(t, WriteWorkbook(path, sampleResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	companies := f.Sheets[0]
	assert.Equal(t, "Companies", companies.Name)
	require.Len(t, companies.Rows, 3) // header + 2 companies
	assert.Equal(t, "TechFlow Solutions", companies.Rows[1].Cells[0].String())
	assert.Equal(t, "forum_high_intent", companies.Rows[1].Cells[5].String())

	contacts := f.Sheets[1]
	assert.Equal(t, "Contacts", contacts.Name)
	require.Len(t, contacts.Rows, 2) // header + 1 contact
	assert.Equal(t, "ceo@techflowsolutions.com", contacts.Rows[1].Cells[1].String())
}
