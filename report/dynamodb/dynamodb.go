// Package dynamodb records benchmark results in an Amazon DynamoDB table.
//
// The table uses "name" (string) as partition key and "run_at" (string,
// RFC 3339 with nanoseconds) as sort key, so results for one benchmark sort
// by start time.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/wheelsieve/report"
)

// DDBClient is the subset of the DynamoDB API the sink uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrDuplicateRun is returned when a result with the same name and start
// time was already recorded.
var ErrDuplicateRun = errors.New("result already recorded")

// Sink writes results to a DynamoDB table.
type Sink struct {
	client DDBClient
	table  string
}

// NewSink creates a sink for table.
func NewSink(client DDBClient, table string) *Sink {
	return &Sink{client: client, table: table}
}

var _ report.Sink = (*Sink)(nil)

// Write stores r. It never overwrites an existing item.
func (s *Sink) Write(ctx context.Context, r report.Result) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                marshalResult(r),
		ConditionExpression: aws.String("attribute_not_exists(run_at)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %s at %s", ErrDuplicateRun, r.Name, r.Started.Format(time.RFC3339Nano))
		}
		return fmt.Errorf("failed to write result to DynamoDB: %w", err)
	}
	return nil
}

// Latest returns the most recent result recorded for name.
func (s *Sink) Latest(ctx context.Context, name string) (report.Result, bool, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("#n = :name"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return report.Result{}, false, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return report.Result{}, false, nil
	}

	r, err := unmarshalResult(resp.Items[0])
	if err != nil {
		return report.Result{}, false, err
	}
	return r, true, nil
}

func number[T int | uint | uint64 | int64](v T) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprint(v)}
}

func marshalResult(r report.Result) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"name":       &types.AttributeValueMemberS{Value: r.Name},
		"run_at":     &types.AttributeValueMemberS{Value: r.Started.UTC().Format(time.RFC3339Nano)},
		"bound":      number(r.Bound),
		"passes":     number(r.Passes),
		"elapsed_ns": number(r.Elapsed.Nanoseconds()),
		"threads":    number(r.Threads),
		"count":      number(r.Count),
		"valid":      &types.AttributeValueMemberBOOL{Value: r.Valid},
		"word_bits":  number(r.WordBits),
	}
}

func unmarshalResult(item map[string]types.AttributeValue) (report.Result, error) {
	var (
		r    report.Result
		errs []error
	)

	str := func(key string) string {
		v, ok := item[key].(*types.AttributeValueMemberS)
		if !ok {
			errs = append(errs, fmt.Errorf("invalid %s attribute in DynamoDB", key))
			return ""
		}
		return v.Value
	}
	num := func(key string) uint64 {
		v, ok := item[key].(*types.AttributeValueMemberN)
		if !ok {
			errs = append(errs, fmt.Errorf("invalid %s attribute in DynamoDB", key))
			return 0
		}
		n, err := strconv.ParseUint(v.Value, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %s: %w", key, err))
		}
		return n
	}

	r.Name = str("name")
	if started := str("run_at"); started != "" {
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse run_at: %w", err))
		}
		r.Started = t
	}
	r.Bound = num("bound")
	r.Passes = int(num("passes"))
	r.Elapsed = time.Duration(num("elapsed_ns"))
	r.Threads = int(num("threads"))
	r.Count = num("count")
	r.WordBits = uint(num("word_bits"))
	if v, ok := item["valid"].(*types.AttributeValueMemberBOOL); ok {
		r.Valid = v.Value
	}

	return r, errors.Join(errs...)
}
