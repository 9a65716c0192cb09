package raffle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

// Catalog is the set of prizes a cycle can be opened with
type Catalog interface {
	// SelectRandom picks uniformly among prizes other than exclude. A catalog
	// with a single prize returns that prize even when it is excluded.
	SelectRandom(exclude string) (domain.Prize, error)
	Get(id string) (domain.Prize, error)
	List() []domain.Prize
}

// DefaultPrizes are the two parrot accessories offered by the game
func DefaultPrizes() []domain.Prize {
	return []domain.Prize{
		{ID: "loro-rojo", Name: "Loro Pirata Rojo", Rarity: domain.RarityRare, Value: 10, TokenKind: domain.TokenLoroRojo},
		{ID: "loro-morado", Name: "Loro Pirata Morado", Rarity: domain.RarityLegendary, Value: 5, TokenKind: domain.TokenLoroMorado},
	}
}

// StaticCatalog is an immutable in-memory catalog
type StaticCatalog struct {
	prizes []domain.Prize
	rng    RandomSource
}

// NewStaticCatalog validates prizes and builds a catalog
func NewStaticCatalog(prizes []domain.Prize, rng RandomSource) (*StaticCatalog, error) {
	if len(prizes) == 0 {
		return nil, domain.ErrPrizeCatalogEmpty
	}
	seen := make(map[string]bool, len(prizes))
	for _, p := range prizes {
		if p.ID == "" || p.Value <= 0 {
			return nil, fmt.Errorf("%w: prize %q must have an id and positive value", domain.ErrInvalidInput, p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate prize id %q", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
	}
	if rng == nil {
		rng = CryptoRandom
	}
	cp := make([]domain.Prize, len(prizes))
	copy(cp, prizes)
	return &StaticCatalog{prizes: cp, rng: rng}, nil
}

// LoadCatalogFile reads a list of prizes from JSON, or YAML when the file
// ends in .yaml/.yml, and checks it against the embedded catalog schema
func LoadCatalogFile(path string, rng RandomSource) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prize catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	if err := validateCatalogJSON(data); err != nil {
		return nil, err
	}
	var prizes []domain.Prize
	if err := json.Unmarshal(data, &prizes); err != nil {
		return nil, fmt.Errorf("failed to parse prize catalog: %w", err)
	}
	return NewStaticCatalog(prizes, rng)
}

// SelectRandom implements Catalog
func (c *StaticCatalog) SelectRandom(exclude string) (domain.Prize, error) {
	candidates := make([]domain.Prize, 0, len(c.prizes))
	for _, p := range c.prizes {
		if p.ID != exclude {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = c.prizes
	}

	idx, err := c.rng.Int63n(int64(len(candidates)))
	if err != nil {
		return domain.Prize{}, fmt.Errorf("%s: %w", ErrContextSelectPrize, err)
	}
	return candidates[idx], nil
}

// Get implements Catalog
func (c *StaticCatalog) Get(id string) (domain.Prize, error) {
	for _, p := range c.prizes {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Prize{}, fmt.Errorf("%w: %s", domain.ErrPrizeNotFound, id)
}

// List implements Catalog
func (c *StaticCatalog) List() []domain.Prize {
	out := make([]domain.Prize, len(c.prizes))
	copy(out, c.prizes)
	return out
}

// DisplayRarity title-cases a rarity tag for notifications ("legendario" -> "Legendario")
func DisplayRarity(r domain.Rarity) string {
	return cases.Title(language.Spanish).String(strings.ToLower(string(r)))
}

// yamlToJSON re-encodes a YAML catalog so both formats share one schema
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
