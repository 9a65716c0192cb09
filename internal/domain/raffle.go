package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CycleState represents the lifecycle state of a raffle cycle
type CycleState string

const (
	CycleStateOpen    CycleState = "OPEN"
	CycleStateDrawing CycleState = "DRAWING"
)

// TokenKind identifies a token type held on the external ledger
type TokenKind string

const (
	TokenPirot      TokenKind = "PIROT"
	TokenLoroRojo   TokenKind = "LORO_ROJO"
	TokenLoroMorado TokenKind = "LORO_MORADO"
)

// Rarity is the display category of a prize
type Rarity string

const (
	RarityRare      Rarity = "raro"
	RarityLegendary Rarity = "legendario"
)

// CapNumerator and CapDenominator express the 70% per-participant contribution ceiling
const (
	CapNumerator   = 7
	CapDenominator = 10
)

// Prize is an item that can be won in a cycle
type Prize struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rarity    Rarity    `json:"rarity"`
	Value     int64     `json:"value"`
	TokenKind TokenKind `json:"token_kind"`
}

// Cap returns the maximum total contribution a single participant may make
// toward this prize: floor(value * 0.7).
func (p Prize) Cap() int64 {
	if p.Value <= 0 {
		return 0
	}
	return p.Value * CapNumerator / CapDenominator
}

// Entry is one accepted contribution toward the active cycle
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	CycleID     uuid.UUID       `json:"cycle_id"`
	Participant string          `json:"participant"`
	Amount      int64           `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Share       decimal.Decimal `json:"share"`
}

// Cycle is one draw period
type Cycle struct {
	ID        uuid.UUID  `json:"id"`
	Number    int64      `json:"number"`
	State     CycleState `json:"state"`
	Prize     Prize      `json:"prize"`
	Entries   []Entry    `json:"entries"`
	PoolTotal int64      `json:"pool_total"`
	OpenedAt  time.Time  `json:"opened_at"`
	Deadline  time.Time  `json:"deadline"`
}

// ParticipantTotal sums the amounts contributed by a participant in this cycle
func (c *Cycle) ParticipantTotal(participant string) int64 {
	var total int64
	for _, e := range c.Entries {
		if e.Participant == participant {
			total += e.Amount
		}
	}
	return total
}

// Clone returns a deep copy safe to hand out of the engine's lock
func (c *Cycle) Clone() *Cycle {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Entries = make([]Entry, len(c.Entries))
	copy(cp.Entries, c.Entries)
	return &cp
}

// WinnerRecord is the immutable outcome of a completed draw
type WinnerRecord struct {
	CycleID     uuid.UUID `json:"cycle_id"`
	CycleNumber int64     `json:"cycle_number"`
	Participant string    `json:"participant"`
	PrizeID     string    `json:"prize_id"`
	PrizeName   string    `json:"prize_name"`
	TokenKind   TokenKind `json:"token_kind"`
	PoolTotal   int64     `json:"pool_total"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// ParticipantChance is the aggregate win-share of one participant
type ParticipantChance struct {
	Participant string          `json:"participant"`
	Contributed int64           `json:"contributed"`
	Share       decimal.Decimal `json:"share"`
	Entries     int             `json:"entries"`
}
