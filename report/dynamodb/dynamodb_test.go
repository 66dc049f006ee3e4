package dynamodb

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/wheelsieve/report"
)

// mockDDBClient keeps items in memory, keyed by name and run_at.
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue
	err   error
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	name := params.Item["name"].(*types.AttributeValueMemberS).Value
	runAt := params.Item["run_at"].(*types.AttributeValueMemberS).Value
	if m.items[name] == nil {
		m.items[name] = make(map[string]map[string]types.AttributeValue)
	}
	if _, exists := m.items[name][runAt]; exists && params.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: &runAt}
	}
	m.items[name][runAt] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := params.ExpressionAttributeValues[":name"].(*types.AttributeValueMemberS).Value
	var keys []string
	for k := range m.items[name] {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if params.Limit != nil && len(keys) > int(*params.Limit) {
		keys = keys[:*params.Limit]
	}

	out := &dynamodb.QueryOutput{}
	for _, k := range keys {
		out.Items = append(out.Items, m.items[name][k])
	}
	return out, nil
}

func result(started time.Time, passes int) report.Result {
	return report.Result{
		Name:     "wheelsieve",
		Bound:    1_000_000,
		Passes:   passes,
		Elapsed:  5 * time.Second,
		Threads:  4,
		Count:    78_498,
		Valid:    true,
		WordBits: 64,
		Started:  started,
	}
}

func TestSink_WriteAndLatest(t *testing.T) {
	ctx := context.Background()
	sink := NewSink(newMockDDBClient(), "results")

	_, ok, err := sink.Latest(ctx, "wheelsieve")
	require.NoError(t, err)
	assert.False(t, ok)

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, sink.Write(ctx, result(t0, 100)))
	require.NoError(t, sink.Write(ctx, result(t0.Add(time.Minute), 200)))

	got, ok, err := sink.Latest(ctx, "wheelsieve")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result(t0.Add(time.Minute), 200), got)
}

func TestSink_Duplicate(t *testing.T) {
	ctx := context.Background()
	sink := NewSink(newMockDDBClient(), "results")

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, sink.Write(ctx, result(t0, 1)))
	err := sink.Write(ctx, result(t0, 2))
	assert.ErrorIs(t, err, ErrDuplicateRun)
}

func TestSink_ClientError(t *testing.T) {
	client := newMockDDBClient()
	client.err = errors.New("throttled")
	sink := NewSink(client, "results")

	err := sink.Write(context.Background(), result(time.Now(), 1))
	assert.ErrorIs(t, err, client.err)
}

func TestUnmarshalInvalidItem(t *testing.T) {
	_, err := unmarshalResult(map[string]types.AttributeValue{
		"name":  &types.AttributeValueMemberN{Value: "1"},
		"bound": &types.AttributeValueMemberN{Value: "x"},
	})
	assert.Error(t, err)
}
