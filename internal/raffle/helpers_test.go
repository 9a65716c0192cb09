package raffle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

// testPrizes puts the value-100 chest first so a zero roll opens with cap 70
func testPrizes() []domain.Prize {
	return []domain.Prize{
		{ID: "cofre", Name: "Cofre", Rarity: domain.RarityLegendary, Value: 100, TokenKind: domain.TokenLoroMorado},
		{ID: "loro-rojo", Name: "Loro Pirata Rojo", Rarity: domain.RarityRare, Value: 10, TokenKind: domain.TokenLoroRojo},
	}
}

func newTestCatalog(t *testing.T) *StaticCatalog {
	t.Helper()
	catalog, err := NewStaticCatalog(testPrizes(), fixedRoll(0))
	require.NoError(t, err)
	return catalog
}

func newTestService(t *testing.T, repo repository.Raffle, balances BalanceReader, bus event.Bus, cfg Config) *service {
	t.Helper()
	svc, err := NewService(repo, newTestCatalog(t), balances, bus, cfg)
	require.NoError(t, err)
	return svc.(*service)
}

func richBalances(participants ...string) staticBalances {
	b := staticBalances{}
	for _, p := range participants {
		b[p] = 1_000_000
	}
	return b
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
