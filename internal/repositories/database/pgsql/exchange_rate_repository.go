package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_app/internal/models"
	"github.com/SscSPs/currency_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const observationColumns = `
	id, currency, currency_denom, obs_value, title, title_compl, observed_date, created_at`

// PgxExchangeRateRepository implements the exchange rate store using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// InsertObservation appends one observation. Each call commits on its own.
func (r *PgxExchangeRateRepository) InsertObservation(ctx context.Context, obs domain.ExchangeRateObservation) (*domain.ExchangeRateObservation, error) {
	modelObs := mapping.ToModelExchangeRateObservation(obs)

	err := r.Pool.QueryRow(ctx, `
		INSERT INTO exchange_rate_observations (
			currency, currency_denom, obs_value, title, title_compl, observed_date
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		modelObs.Currency, modelObs.CurrencyDenom, modelObs.ObsValue,
		modelObs.Title, modelObs.TitleCompl, modelObs.ObservedDate,
	).Scan(&modelObs.ID, &modelObs.CreatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert exchange rate observation", err)
	}

	inserted := mapping.ToDomainExchangeRateObservation(modelObs)
	return &inserted, nil
}

// FindLatestPerCurrency returns the newest row of every currency, ordered by currency.
func (r *PgxExchangeRateRepository) FindLatestPerCurrency(ctx context.Context) ([]domain.ExchangeRateObservation, error) {
	query := `
		SELECT DISTINCT ON (currency)` + observationColumns + `
		FROM exchange_rate_observations
		ORDER BY currency ASC, observed_date DESC, id DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest exchange rates", err)
	}
	return collectObservations(rows)
}

// FindHistory returns up to limit rows for currency, newest first.
func (r *PgxExchangeRateRepository) FindHistory(ctx context.Context, currency string, limit int) ([]domain.ExchangeRateObservation, error) {
	query := `
		SELECT` + observationColumns + `
		FROM exchange_rate_observations
		WHERE currency = $1
		ORDER BY observed_date DESC, id DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, currency, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exchange rate history", err)
	}
	return collectObservations(rows)
}

// FindLatest returns the newest row for currency.
func (r *PgxExchangeRateRepository) FindLatest(ctx context.Context, currency string) (*domain.ExchangeRateObservation, error) {
	query := `
		SELECT` + observationColumns + `
		FROM exchange_rate_observations
		WHERE currency = $1
		ORDER BY observed_date DESC, id DESC
		LIMIT 1;
	`

	var modelObs models.ExchangeRateObservation
	err := scanObservation(r.Pool.QueryRow(ctx, query, currency), &modelObs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no exchange rate data for currency " + currency)
		}
		return nil, apperrors.NewAppError(500, "failed to find latest exchange rate", err)
	}

	domainObs := mapping.ToDomainExchangeRateObservation(modelObs)
	return &domainObs, nil
}

func scanObservation(row pgx.Row, m *models.ExchangeRateObservation) error {
	return row.Scan(
		&m.ID, &m.Currency, &m.CurrencyDenom, &m.ObsValue,
		&m.Title, &m.TitleCompl, &m.ObservedDate, &m.CreatedAt,
	)
}

func collectObservations(rows pgx.Rows) ([]domain.ExchangeRateObservation, error) {
	defer rows.Close()

	modelObs := []models.ExchangeRateObservation{}
	for rows.Next() {
		var m models.ExchangeRateObservation
		if err := scanObservation(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate observation", err)
		}
		modelObs = append(modelObs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rate observations", err)
	}

	return mapping.ToDomainExchangeRateObservations(modelObs), nil
}
