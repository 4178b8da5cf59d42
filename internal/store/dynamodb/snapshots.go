package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// PutMachine stores a machine snapshot.
func (s *Store) PutMachine(ctx context.Context, m types.Machine) error {
	return s.putJSON(ctx, pkMachines, m.ID, m)
}

// GetMachine retrieves a machine snapshot by ID.
func (s *Store) GetMachine(ctx context.Context, id string) (*types.Machine, error) {
	var m types.Machine
	if err := s.getJSON(ctx, pkMachines, id, &m); err != nil {
		return nil, fmt.Errorf("machine %q: %w", id, err)
	}
	return &m, nil
}

// ListMachines returns all machine snapshots ordered by ID.
func (s *Store) ListMachines(ctx context.Context) ([]types.Machine, error) {
	items, err := s.queryPartition(ctx, pkMachines, 0, true)
	if err != nil {
		return nil, err
	}
	out := make([]types.Machine, 0, len(items))
	for _, item := range items {
		var m types.Machine
		if err := decodeDataAttr(item, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// AppendReading stores a sensor reading keyed by its timestamp so range
// queries return time order.
func (s *Store) AppendReading(ctx context.Context, r types.SensorReading) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item: map[string]ddbtypes.AttributeValue{
			"PK":   &ddbtypes.AttributeValueMemberS{Value: pkReadings + r.MachineID},
			"SK":   &ddbtypes.AttributeValueMemberS{Value: fmt.Sprintf("%020d", r.Timestamp.UnixNano())},
			"data": &ddbtypes.AttributeValueMemberS{Value: string(data)},
		},
	})
	return err
}

// LatestReadings returns up to n of the newest readings, oldest first.
func (s *Store) LatestReadings(ctx context.Context, machineID string, n int) ([]types.SensorReading, error) {
	items, err := s.queryPartition(ctx, pkReadings+machineID, n, false)
	if err != nil {
		return nil, err
	}

	// Query returned newest first; reverse into chronological order.
	out := make([]types.SensorReading, len(items))
	for i, item := range items {
		var r types.SensorReading
		if err := decodeDataAttr(item, &r); err != nil {
			return nil, err
		}
		out[len(items)-1-i] = r
	}
	return out, nil
}

// PutSparePart stores a spare part snapshot.
func (s *Store) PutSparePart(ctx context.Context, p types.SparePart) error {
	return s.putJSON(ctx, pkParts, p.ID, p)
}

// GetSparePart retrieves a spare part snapshot by ID.
func (s *Store) GetSparePart(ctx context.Context, id string) (*types.SparePart, error) {
	var p types.SparePart
	if err := s.getJSON(ctx, pkParts, id, &p); err != nil {
		return nil, fmt.Errorf("spare part %q: %w", id, err)
	}
	return &p, nil
}

// PutSupplier stores a supplier snapshot.
func (s *Store) PutSupplier(ctx context.Context, sup types.Supplier) error {
	return s.putJSON(ctx, pkSupplier, sup.ID, sup)
}

// GetSupplier retrieves a supplier snapshot by ID.
func (s *Store) GetSupplier(ctx context.Context, id string) (*types.Supplier, error) {
	var sup types.Supplier
	if err := s.getJSON(ctx, pkSupplier, id, &sup); err != nil {
		return nil, fmt.Errorf("supplier %q: %w", id, err)
	}
	return &sup, nil
}

func (s *Store) putJSON(ctx context.Context, pk, sk string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item: map[string]ddbtypes.AttributeValue{
			"PK":   &ddbtypes.AttributeValueMemberS{Value: pk},
			"SK":   &ddbtypes.AttributeValueMemberS{Value: sk},
			"data": &ddbtypes.AttributeValueMemberS{Value: string(data)},
		},
	})
	return err
}

func (s *Store) getJSON(ctx context.Context, pk, sk string, dest interface{}) error {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: pk},
			"SK": &ddbtypes.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return err
	}
	if out.Item == nil {
		return store.ErrNotFound
	}
	return decodeDataAttr(out.Item, dest)
}

// queryPartition returns the items of one partition. With ascending=false
// items come back newest first, limited to n.
func (s *Store) queryPartition(ctx context.Context, pk string, n int, ascending bool) ([]map[string]ddbtypes.AttributeValue, error) {
	in := &dynamodb.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk": &ddbtypes.AttributeValueMemberS{Value: pk},
		},
		ScanIndexForward: aws.Bool(ascending),
	}
	if n > 0 {
		in.Limit = aws.Int32(int32(n))
	}
	out, err := s.client.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

func decodeDataAttr(item map[string]ddbtypes.AttributeValue, dest interface{}) error {
	attr, ok := item["data"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("item missing data attribute")
	}
	return json.Unmarshal([]byte(attr.Value), dest)
}
