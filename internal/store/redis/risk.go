package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// upsertRiskScript atomically creates or overwrites the single risk
// record for a part. On update it preserves the original record's id and
// createdAt so the part keeps one stable record identity. Returns the
// record as stored.
const upsertRiskScript = `
local rec = cjson.decode(ARGV[1])
local existing = redis.call('GET', KEYS[1])
if existing then
  local old = cjson.decode(existing)
  rec['id'] = old['id']
  rec['createdAt'] = old['createdAt']
end
local encoded = cjson.encode(rec)
redis.call('SET', KEYS[1], encoded)
redis.call('SADD', KEYS[2], rec['partId'])
return encoded
`

// UpsertRiskAssessment performs the per-part atomic upsert via a Lua
// script so concurrent assessments of the same part cannot interleave.
func (s *Store) UpsertRiskAssessment(ctx context.Context, rec types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	keys := []string{s.riskKey(rec.PartID), s.riskIndexKey()}
	raw, err := s.upsertScript.Run(ctx, s.client, keys, string(data)).Text()
	if err != nil {
		return nil, fmt.Errorf("risk upsert for part %q: %w", rec.PartID, err)
	}

	var stored types.SupplyRiskAssessment
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decoding stored risk record: %w", err)
	}
	return &stored, nil
}

// GetRiskAssessment retrieves the current risk record for a part.
func (s *Store) GetRiskAssessment(ctx context.Context, partID string) (*types.SupplyRiskAssessment, error) {
	var rec types.SupplyRiskAssessment
	if err := s.getJSON(ctx, s.riskKey(partID), &rec); err != nil {
		return nil, fmt.Errorf("risk assessment for part %q: %w", partID, err)
	}
	return &rec, nil
}

// ListRiskAssessments returns up to limit risk records sorted by part ID.
func (s *Store) ListRiskAssessments(ctx context.Context, limit int) ([]types.SupplyRiskAssessment, error) {
	partIDs, err := s.client.SMembers(ctx, s.riskIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(partIDs)
	if limit > 0 && len(partIDs) > limit {
		partIDs = partIDs[:limit]
	}

	out := make([]types.SupplyRiskAssessment, 0, len(partIDs))
	for _, partID := range partIDs {
		rec, err := s.GetRiskAssessment(ctx, partID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}
