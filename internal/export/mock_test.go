package export

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/mock"

	sfpkg "github.com/sells-group/leadgen-cli/pkg/salesforce"
)

// mockNotionClient implements notion.Client for testing.
type mockNotionClient struct {
	mock.Mock
}

func (m *mockNotionClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	args := m.Called(ctx, dbID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.DatabaseQueryResponse), args.Error(1)
}

func (m *mockNotionClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

func (m *mockNotionClient) UpdatePage(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, pageID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

// mockSalesforceClient implements salesforce.Client for testing.
type mockSalesforceClient struct {
	mock.Mock
}

func (m *mockSalesforceClient) Query(ctx context.Context, soql string, out any) error {
	args := m.Called(ctx, soql, out)
	return args.Error(0)
}

func (m *mockSalesforceClient) InsertOne(ctx context.Context, sObjectName string, record map[string]any) (string, error) {
	args := m.Called(ctx, sObjectName, record)
	return args.String(0), args.Error(1)
}

func (m *mockSalesforceClient) InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]sfpkg.CollectionResult, error) {
	args := m.Called(ctx, sObjectName, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sfpkg.CollectionResult), args.Error(1)
}

func (m *mockSalesforceClient) UpdateOne(ctx context.Context, sObjectName string, id string, fields map[string]any) error {
	args := m.Called(ctx, sObjectName, id, fields)
	return args.Error(0)
}
