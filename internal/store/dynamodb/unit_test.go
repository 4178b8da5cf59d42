package dynamodb

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// mockDDB is a minimal mock of the api interface for unit testing.
type mockDDB struct {
	putItemFn       func(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	getItemFn       func(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	queryFn         func(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	updateItemFn    func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	describeTableFn func(ctx context.Context, input *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	createTableFn   func(ctx context.Context, input *dynamodb.CreateTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

func (m *mockDDB) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFn != nil {
		return m.putItemFn(ctx, input, opts...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDB) GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, input, opts...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDDB) Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, input, opts...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockDDB) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, input, opts...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockDDB) DescribeTable(ctx context.Context, input *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if m.describeTableFn != nil {
		return m.describeTableFn(ctx, input, opts...)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (m *mockDDB) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if m.createTableFn != nil {
		return m.createTableFn(ctx, input, opts...)
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func newTestStore(mock *mockDDB) *Store {
	s, _ := New(&types.DynamoDBConfig{TableName: "plantpulse-test", Region: "us-east-1"})
	s.client = mock
	return s
}

func TestUpsertRisk_PreservesIdentityExpression(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	mock := &mockDDB{
		updateItemFn: func(_ context.Context, input *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = input
			return &dynamodb.UpdateItemOutput{Attributes: map[string]ddbtypes.AttributeValue{
				"id":     &ddbtypes.AttributeValueMemberS{Value: "rec-1"},
				"partId": &ddbtypes.AttributeValueMemberS{Value: "part-1"},
			}}, nil
		},
	}
	s := newTestStore(mock)

	rec := types.SupplyRiskAssessment{
		ID:        "rec-2",
		PartID:    "part-1",
		RiskLevel: types.RiskLow,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	stored, err := s.UpsertRiskAssessment(context.Background(), rec)
	require.NoError(t, err)

	// The server-side merge returned the original record identity.
	assert.Equal(t, "rec-1", stored.ID)

	require.NotNil(t, captured)
	assert.Equal(t, pkRisks, captured.Key["PK"].(*ddbtypes.AttributeValueMemberS).Value)
	assert.Equal(t, "part-1", captured.Key["SK"].(*ddbtypes.AttributeValueMemberS).Value)
	assert.Equal(t, ddbtypes.ReturnValueAllNew, captured.ReturnValues)

	// id and createdAt must be written with if_not_exists; everything
	// else must be plain assignments.
	expr := *captured.UpdateExpression
	idPh, createdPh := "", ""
	for ph, name := range captured.ExpressionAttributeNames {
		switch name {
		case "id":
			idPh = ph
		case "createdAt":
			createdPh = ph
		}
	}
	require.NotEmpty(t, idPh)
	require.NotEmpty(t, createdPh)
	assert.Contains(t, expr, idPh+" = if_not_exists("+idPh)
	assert.Contains(t, expr, createdPh+" = if_not_exists("+createdPh)
	assert.Equal(t, 2, strings.Count(expr, "if_not_exists"))
}

func TestGetMachine_NotFound(t *testing.T) {
	mock := &mockDDB{
		getItemFn: func(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: nil}, nil
		},
	}
	s := newTestStore(mock)

	_, err := s.GetMachine(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLatestReadings_ReversesIntoChronologicalOrder(t *testing.T) {
	encode := func(temp float64) map[string]ddbtypes.AttributeValue {
		data, _ := json.Marshal(types.SensorReading{MachineID: "m1", Temperature: temp})
		return map[string]ddbtypes.AttributeValue{
			"data": &ddbtypes.AttributeValueMemberS{Value: string(data)},
		}
	}

	var captured *dynamodb.QueryInput
	mock := &mockDDB{
		queryFn: func(_ context.Context, input *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			captured = input
			// Newest first, as DynamoDB returns with ScanIndexForward=false.
			return &dynamodb.QueryOutput{Items: []map[string]ddbtypes.AttributeValue{
				encode(52), encode(51), encode(50),
			}}, nil
		},
	}
	s := newTestStore(mock)

	got, err := s.LatestReadings(context.Background(), "m1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 50.0, got[0].Temperature)
	assert.Equal(t, 52.0, got[2].Temperature)

	require.NotNil(t, captured)
	assert.False(t, *captured.ScanIndexForward)
	assert.Equal(t, int32(3), *captured.Limit)
}

func TestAppendReading_TimestampSortKey(t *testing.T) {
	var captured *dynamodb.PutItemInput
	mock := &mockDDB{
		putItemFn: func(_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			captured = input
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	s := newTestStore(mock)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err := s.AppendReading(context.Background(), types.SensorReading{MachineID: "m1", Timestamp: ts})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, pkReadings+"m1", captured.Item["PK"].(*ddbtypes.AttributeValueMemberS).Value)
	sk := captured.Item["SK"].(*ddbtypes.AttributeValueMemberS).Value
	assert.Len(t, sk, 20)
	assert.True(t, strings.HasSuffix(sk, "000000000"))
}

func TestEnsureTable_ToleratesExisting(t *testing.T) {
	mock := &mockDDB{
		createTableFn: func(_ context.Context, _ *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
			return nil, &ddbtypes.ResourceInUseException{}
		},
	}
	s := newTestStore(mock)
	s.createTable = true

	require.NoError(t, s.Start(context.Background()))
}
