package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Risk records are stored as native attributes (not a JSON blob) so the
// upsert can preserve id and createdAt server-side with if_not_exists,
// keeping the create-or-update atomic in a single call.

// UpsertRiskAssessment atomically creates or overwrites the single risk
// record for a part and returns the record as stored.
func (s *Store) UpsertRiskAssessment(ctx context.Context, rec types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error) {
	item, err := marshalRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding risk record: %w", err)
	}

	names := map[string]string{}
	values := map[string]ddbtypes.AttributeValue{}
	var sets []string

	// Deterministic attribute order keeps the expression stable.
	attrs := make([]string, 0, len(item))
	for attr := range item {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	for i, attr := range attrs {
		namePh := fmt.Sprintf("#a%d", i)
		valuePh := fmt.Sprintf(":v%d", i)
		names[namePh] = attr
		values[valuePh] = item[attr]
		if attr == "id" || attr == "createdAt" {
			sets = append(sets, fmt.Sprintf("%s = if_not_exists(%s, %s)", namePh, namePh, valuePh))
		} else {
			sets = append(sets, namePh+" = "+valuePh)
		}
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: pkRisks},
			"SK": &ddbtypes.AttributeValueMemberS{Value: rec.PartID},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              ddbtypes.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("risk upsert for part %q: %w", rec.PartID, err)
	}

	stored, err := unmarshalRecord(out.Attributes)
	if err != nil {
		return nil, fmt.Errorf("decoding stored risk record: %w", err)
	}
	return stored, nil
}

// GetRiskAssessment retrieves the current risk record for a part.
func (s *Store) GetRiskAssessment(ctx context.Context, partID string) (*types.SupplyRiskAssessment, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: pkRisks},
			"SK": &ddbtypes.AttributeValueMemberS{Value: partID},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("risk assessment for part %q: %w", partID, store.ErrNotFound)
	}
	return unmarshalRecord(out.Item)
}

// ListRiskAssessments returns up to limit risk records ordered by part ID.
func (s *Store) ListRiskAssessments(ctx context.Context, limit int) ([]types.SupplyRiskAssessment, error) {
	items, err := s.queryPartition(ctx, pkRisks, limit, true)
	if err != nil {
		return nil, err
	}
	out := make([]types.SupplyRiskAssessment, 0, len(items))
	for _, item := range items {
		rec, err := unmarshalRecord(item)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// marshalRecord encodes the record with its JSON field names so DynamoDB
// attributes match the wire representation used everywhere else.
func marshalRecord(rec types.SupplyRiskAssessment) (map[string]ddbtypes.AttributeValue, error) {
	enc := attributevalue.NewEncoder(func(o *attributevalue.EncoderOptions) {
		o.TagKey = "json"
	})
	av, err := enc.Encode(rec)
	if err != nil {
		return nil, err
	}
	m, ok := av.(*ddbtypes.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("unexpected attribute encoding %T", av)
	}
	return m.Value, nil
}

func unmarshalRecord(item map[string]ddbtypes.AttributeValue) (*types.SupplyRiskAssessment, error) {
	dec := attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	})
	var rec types.SupplyRiskAssessment
	if err := dec.Decode(&ddbtypes.AttributeValueMemberM{Value: item}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
