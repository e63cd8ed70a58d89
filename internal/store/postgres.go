package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const venueColumns = `venue_id, name, type, city,
	latitude, longitude, price_level, tags, rating,
	source, created_at, updated_at`

// engineSettingsID keys the singleton settings row.
const engineSettingsID = 1

func (s *PostgresStore) CreateVenue(ctx context.Context, v *Venue) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO venues (name, type, city, latitude, longitude, price_level, tags, rating, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING venue_id, created_at, updated_at`,
		v.Name, v.Type, v.City, v.Latitude, v.Longitude, v.PriceLevel, v.Tags, v.Rating, v.Source,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (s *PostgresStore) GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error) {
	v := &Venue{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+venueColumns+`
		FROM venues WHERE venue_id = $1`, id,
	).Scan(
		&v.ID, &v.Name, &v.Type, &v.City,
		&v.Latitude, &v.Longitude, &v.PriceLevel, &v.Tags, &v.Rating,
		&v.Source, &v.CreatedAt, &v.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *PostgresStore) ListVenues(ctx context.Context, filter VenueFilter) ([]*Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Type != nil {
		n++
		query += fmt.Sprintf(" AND type = $%d", n)
		args = append(args, string(*filter.Type))
	}
	if filter.City != "" {
		n++
		query += fmt.Sprintf(" AND city = $%d", n)
		args = append(args, filter.City)
	}
	if filter.MinRating != nil {
		n++
		query += fmt.Sprintf(" AND rating >= $%d", n)
		args = append(args, *filter.MinRating)
	}

	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVenues(rows)
}

func (s *PostgresStore) UpdateVenue(ctx context.Context, v *Venue) error {
	return s.pool.QueryRow(ctx, `
		UPDATE venues
		SET name = $2, type = $3, city = $4,
			latitude = $5, longitude = $6, price_level = $7, tags = $8, rating = $9,
			source = $10, updated_at = now()
		WHERE venue_id = $1
		RETURNING updated_at`,
		v.ID, v.Name, v.Type, v.City,
		v.Latitude, v.Longitude, v.PriceLevel, v.Tags, v.Rating, v.Source,
	).Scan(&v.UpdatedAt)
}

func (s *PostgresStore) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM venues WHERE venue_id = $1`, id)
	return err
}

func (s *PostgresStore) ListCandidates(ctx context.Context, venueType VenueType) ([]*Venue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE type = $1 AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY created_at ASC`, string(venueType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVenues(rows)
}

func (s *PostgresStore) GetEngineSettings(ctx context.Context) (*EngineSettings, error) {
	rec := &EngineSettings{}
	err := s.pool.QueryRow(ctx, `
		SELECT split_ratio_hotel, split_ratio_food, split_ratio_activity,
			weight_price_fit, weight_distance, weight_affinity, weight_rating,
			penalty_per_km, updated_by, updated_at
		FROM engine_settings WHERE id = $1`, engineSettingsID,
	).Scan(
		&rec.SplitRatioHotel, &rec.SplitRatioFood, &rec.SplitRatioActivity,
		&rec.WeightPriceFit, &rec.WeightDistance, &rec.WeightAffinity, &rec.WeightRating,
		&rec.PenaltyPerKm, &rec.UpdatedBy, &rec.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) UpsertEngineSettings(ctx context.Context, rec *EngineSettings) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO engine_settings (id,
			split_ratio_hotel, split_ratio_food, split_ratio_activity,
			weight_price_fit, weight_distance, weight_affinity, weight_rating,
			penalty_per_km, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (id) DO UPDATE SET
			split_ratio_hotel = EXCLUDED.split_ratio_hotel,
			split_ratio_food = EXCLUDED.split_ratio_food,
			split_ratio_activity = EXCLUDED.split_ratio_activity,
			weight_price_fit = EXCLUDED.weight_price_fit,
			weight_distance = EXCLUDED.weight_distance,
			weight_affinity = EXCLUDED.weight_affinity,
			weight_rating = EXCLUDED.weight_rating,
			penalty_per_km = EXCLUDED.penalty_per_km,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING updated_at`,
		engineSettingsID,
		rec.SplitRatioHotel, rec.SplitRatioFood, rec.SplitRatioActivity,
		rec.WeightPriceFit, rec.WeightDistance, rec.WeightAffinity, rec.WeightRating,
		rec.PenaltyPerKm, rec.UpdatedBy,
	).Scan(&rec.UpdatedAt)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*VenueStats, error) {
	stats := &VenueStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE type = 'hotel'),
			count(*) FILTER (WHERE type = 'restaurant'),
			count(*) FILTER (WHERE type = 'activity'),
			count(*) FILTER (WHERE latitude IS NULL OR longitude IS NULL)
		FROM venues`,
	).Scan(
		&stats.TotalVenues, &stats.TotalHotels, &stats.TotalRestaurants,
		&stats.TotalActivities, &stats.MissingCoords,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanVenues(rows pgx.Rows) ([]*Venue, error) {
	var venues []*Venue
	for rows.Next() {
		v := &Venue{}
		err := rows.Scan(
			&v.ID, &v.Name, &v.Type, &v.City,
			&v.Latitude, &v.Longitude, &v.PriceLevel, &v.Tags, &v.Rating,
			&v.Source, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
