package raffle

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

var percent = decimal.NewFromInt(PercentScale)

// ShareOf returns amount/pool as a percentage. A zero pool yields zero.
func ShareOf(amount, pool int64) decimal.Decimal {
	if pool <= 0 || amount <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(amount).Mul(percent).Div(decimal.NewFromInt(pool))
}

// Recompute refreshes every entry's win-share from the current pool.
// It depends only on the ledger contents, so repeated calls are no-ops.
func Recompute(c *domain.Cycle) {
	for i := range c.Entries {
		c.Entries[i].Share = ShareOf(c.Entries[i].Amount, c.PoolTotal)
	}
}

// ChanceOf aggregates a participant's contributions into a single win-share
func ChanceOf(c *domain.Cycle, participant string) domain.ParticipantChance {
	chance := domain.ParticipantChance{Participant: participant, Share: decimal.Zero}
	for _, e := range c.Entries {
		if e.Participant != participant {
			continue
		}
		chance.Contributed += e.Amount
		chance.Entries++
	}
	chance.Share = ShareOf(chance.Contributed, c.PoolTotal)
	return chance
}

// Chances lists every participant's aggregate share in order of first entry
func Chances(c *domain.Cycle) []domain.ParticipantChance {
	index := make(map[string]int)
	var out []domain.ParticipantChance
	for _, e := range c.Entries {
		i, ok := index[e.Participant]
		if !ok {
			i = len(out)
			index[e.Participant] = i
			out = append(out, domain.ParticipantChance{Participant: e.Participant})
		}
		out[i].Contributed += e.Amount
		out[i].Entries++
	}
	for i := range out {
		out[i].Share = ShareOf(out[i].Contributed, c.PoolTotal)
	}
	return out
}

// DisplayShare rounds a share for presentation
func DisplayShare(share decimal.Decimal) string {
	return share.StringFixed(ShareDisplayPlaces)
}
