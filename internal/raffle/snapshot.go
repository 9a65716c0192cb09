package raffle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// Snapshot is the serializable raffle state: the active cycle plus the full
// winner history in append order.
type Snapshot struct {
	Version string                `json:"version"`
	TakenAt time.Time             `json:"taken_at"`
	Cycle   *domain.Cycle         `json:"cycle"`
	History []domain.WinnerRecord `json:"history"`
}

// Validate checks the invariants a restored engine relies on
func (s *Snapshot) Validate() error {
	if s == nil || s.Cycle == nil {
		return fmt.Errorf("%w: missing cycle", domain.ErrSnapshotInvalid)
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: version %q, expected %q", domain.ErrSnapshotInvalid, s.Version, SnapshotVersion)
	}
	if s.Cycle.Prize.ID == "" {
		return fmt.Errorf("%w: cycle has no prize", domain.ErrSnapshotInvalid)
	}

	totals := make(map[string]int64)
	for _, e := range s.Cycle.Entries {
		if e.Amount <= 0 {
			return fmt.Errorf("%w: entry %s has non-positive amount", domain.ErrSnapshotInvalid, e.ID)
		}
		totals[e.Participant] += e.Amount
	}
	if !PoolConsistent(s.Cycle) {
		return fmt.Errorf("%w: pool total %d does not match entries", domain.ErrSnapshotInvalid, s.Cycle.PoolTotal)
	}
	limit := s.Cycle.Prize.Cap()
	for participant, total := range totals {
		if total > limit {
			return fmt.Errorf("%w: %s contributed %d over cap %d", domain.ErrSnapshotInvalid, participant, total, limit)
		}
	}
	return nil
}

// MarshalSnapshot encodes a snapshot as JSON
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes and validates a snapshot
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDecodeSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
