package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/pkg/logger"
)

type LoadOpts struct {
	FromYear *domain.Year
	ToYear   *domain.Year
	Status   *domain.Status
}

// RecordProvider loads an initial record collection from an external source.
type RecordProvider interface {
	Load(ctx context.Context, opts LoadOpts) ([]*domain.Commodity, error)
}

var commodityColumns = []string{"id", "commodity_name", "productivity", "year", "region", "land_area", "status"}

// PostgresSource reads records from the commodities table. It never writes.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	err = backoff.Retry(
		func() error {
			pingErr := pool.Ping(ctx)
			if pingErr != nil {
				logger.Warnf(ctx, "postgres ping: %s", pingErr.Error())
			}
			return pingErr
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 10),
			ctx,
		),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

func (s *PostgresSource) Load(ctx context.Context, opts LoadOpts) ([]*domain.Commodity, error) {
	query, args, err := loadQuery(opts).ToSql()
	if err != nil {
		return nil, fmt.Errorf("loadQuery.ToSql: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, fmt.Errorf("pool.Query: %w", wrapErr(err))
	}

	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[domain.Commodity])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", wrapErr(err))
	}

	return records, nil
}

func loadQuery(opts LoadOpts) sq.SelectBuilder {
	query := builder().Select(commodityColumns...).
		From(tableCommodities).
		OrderBy("year", "region", "commodity_name", "id")

	if opts.FromYear != nil {
		query = query.Where(sq.GtOrEq{"year": *opts.FromYear})
	}

	if opts.ToYear != nil {
		query = query.Where(sq.LtOrEq{"year": *opts.ToYear})
	}

	if opts.Status != nil {
		query = query.Where(sq.Eq{"status": string(*opts.Status)})
	}

	return query
}
