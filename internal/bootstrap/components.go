package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PirotRaffle_Go/internal/config"
	"github.com/osse101/PirotRaffle_Go/internal/database"
	"github.com/osse101/PirotRaffle_Go/internal/database/postgres"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/ledger"
	"github.com/osse101/PirotRaffle_Go/internal/raffle"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

// Storage holds the optional Postgres backing. Both fields are nil when the
// database is disabled.
type Storage struct {
	Pool   *pgxpool.Pool
	Raffle *postgres.RaffleRepository
}

// Repository returns the raffle repository as an interface, or a true nil
// when the database is disabled.
func (s *Storage) Repository() repository.Raffle {
	if s == nil || s.Raffle == nil {
		return nil
	}
	return s.Raffle
}

// Close releases the connection pool
func (s *Storage) Close() {
	if s != nil && s.Pool != nil {
		s.Pool.Close()
	}
}

// InitializeStorage connects to Postgres and applies migrations when enabled
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if !cfg.DBEnabled {
		slog.Info(LogMsgDatabaseDisabled)
		return &Storage{}, nil
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "db", cfg.DBName)

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}

	return &Storage{Pool: pool, Raffle: postgres.NewRaffleRepository(pool)}, nil
}

// InitializeLedger builds the configured balance source behind a TTL cache
func InitializeLedger(cfg *config.Config) (*ledger.CachedLedger, error) {
	var backend ledger.Ledger
	switch cfg.LedgerBackend {
	case config.LedgerBackendRPC:
		rpc, err := ledger.NewRPCLedger(cfg.LedgerRPCURL, cfg.LedgerContractAddress, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLedger, err)
		}
		backend = rpc
	default:
		seed, err := ledger.ParseSeed(cfg.LedgerSeed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedParseSeed, err)
		}
		backend = ledger.NewMemoryLedger(seed)
	}

	slog.Info(LogMsgLedgerInitialized,
		"backend", cfg.LedgerBackend,
		"cache_ttl", cfg.LedgerCacheTTL,
		"cache_size", cfg.LedgerCacheSize)
	return ledger.NewCachedLedger(backend, cfg.LedgerCacheSize, cfg.LedgerCacheTTL), nil
}

// LoadCatalog reads the prize catalog file, or falls back to the built-in prizes
func LoadCatalog(cfg *config.Config) (*raffle.StaticCatalog, error) {
	var (
		catalog *raffle.StaticCatalog
		err     error
	)
	if cfg.CatalogPath != "" {
		catalog, err = raffle.LoadCatalogFile(cfg.CatalogPath, nil)
	} else {
		catalog, err = raffle.NewStaticCatalog(raffle.DefaultPrizes(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded, "path", cfg.CatalogPath, "prizes", len(catalog.List()))
	return catalog, nil
}

// RaffleDependencies are the collaborators of the raffle engine
type RaffleDependencies struct {
	Storage  *Storage
	Catalog  raffle.Catalog
	Balances raffle.BalanceReader
	Bus      event.Bus
}

// InitializeRaffle restores the engine from the newest stored snapshot, or
// opens a fresh first cycle when there is none or it cannot be used.
func InitializeRaffle(ctx context.Context, cfg *config.Config, deps RaffleDependencies) (raffle.Service, error) {
	raffleCfg := raffle.Config{
		CycleDuration:       cfg.RaffleCycleDuration,
		BalanceCheckTimeout: cfg.RaffleBalanceTimeout,
		PersistTimeout:      cfg.RafflePersistTimeout,
	}
	repo := deps.Storage.Repository()

	if repo != nil {
		data, err := repo.LatestSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadSnapshot, err)
		}
		if data != nil {
			snap, err := raffle.UnmarshalSnapshot(data)
			if err == nil {
				var svc raffle.Service
				svc, err = raffle.RestoreService(snap, repo, deps.Catalog, deps.Balances, deps.Bus, raffleCfg)
				if err == nil {
					slog.Info(LogMsgRaffleRestored, "taken_at", snap.TakenAt, "history", len(snap.History))
					return svc, nil
				}
			}
			slog.Warn(LogMsgSnapshotLoadFailed, "error", err)
		}
	}

	svc, err := raffle.NewService(repo, deps.Catalog, deps.Balances, deps.Bus, raffleCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartRaffle, err)
	}
	slog.Info(LogMsgRaffleStarted)
	return svc, nil
}
