package reference

import (
	"context"
	"strings"

	"nftforge/internal/domain"
	"nftforge/internal/infra"
)

// TeamDatabase is a persisted team reference store that can be written to and
// health-checked.
type TeamDatabase interface {
	domain.TeamReferenceStore
	domain.TeamReferenceWriter
	Pinger
}

// Backend is an opened team reference database plus its teardown.
type Backend struct {
	Name  string
	Store TeamDatabase
	close func(context.Context) error
}

// OpenTeamBackend connects to MongoDB when MONGODB_URI is set and to Postgres
// otherwise. It returns (nil, nil) when neither is configured.
func OpenTeamBackend(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Backend, error) {
	if strings.TrimSpace(cfg.MongoURI) != "" {
		db, disconnect, err := infra.NewMongoDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: "mongo", Store: NewMongoTeamStore(db), close: disconnect}, nil
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil || pool == nil {
		return nil, err
	}
	return &Backend{
		Name:  "postgres",
		Store: NewPostgresTeamStore(infra.NewSQLRunner(pool, logger)),
		close: func(context.Context) error { pool.Close(); return nil },
	}, nil
}

// Prepare creates the indexes or table the store relies on. Only operator
// tooling calls it; the API never writes to the reference database.
func (b *Backend) Prepare(ctx context.Context) error {
	switch s := b.Store.(type) {
	case *MongoTeamStore:
		return s.EnsureIndexes(ctx)
	case *PostgresTeamStore:
		return s.EnsureSchema(ctx)
	}
	return nil
}

func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close(ctx)
}
