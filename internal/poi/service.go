package poi

import (
	"context"
	"errors"
	"strings"

	"backend-trafella/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrNotFound = errors.New("poi not found")

const selectColumns = `
		SELECT id, name, category, description, ST_Y(location::geometry), ST_X(location::geometry),
		       location_label, destination, duration_minutes, created_at
		FROM pois`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// ByDestination returns the POIs of a destination in insertion order,
// optionally restricted to the given interest categories. An empty result
// means "no data" and is not an error.
func (s *Service) ByDestination(ctx context.Context, destination string, interests []string) ([]POI, error) {
	query := selectColumns + ` WHERE destination=$1`
	args := []any{NormalizeDestination(destination)}
	if cats := InterestsToCategories(interests); len(cats) > 0 {
		query += ` AND category = ANY($2)`
		args = append(args, cats)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *Service) Get(ctx context.Context, id string) (POI, error) {
	row := s.db.QueryRow(ctx, selectColumns+` WHERE id=$1`, id)
	p, err := scanPOI(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return POI{}, ErrNotFound
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, input POI) (POI, error) {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	input.Destination = NormalizeDestination(input.Destination)
	row := s.db.QueryRow(ctx, `
		INSERT INTO pois (id, name, category, description, location, location_label, destination, duration_minutes)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7, $8, $9)
		RETURNING created_at
	`, input.ID, input.Name, input.Category, input.Description, input.Lng, input.Lat, input.Location, input.Destination, input.DurationMinutes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return POI{}, err
	}
	return input, nil
}

func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]POI, error) {
	rows, err := s.db.Query(ctx, selectColumns+`
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography), id
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]POI, error) {
	defer rows.Close()

	results := []POI{}
	for rows.Next() {
		p, err := scanPOI(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanPOI(row pgx.Row) (POI, error) {
	var (
		p        POI
		duration pgtype.Int4
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Lat, &p.Lng, &p.Location, &p.Destination, &duration, &p.CreatedAt); err != nil {
		return POI{}, err
	}
	if duration.Valid {
		minutes := int(duration.Int32)
		p.DurationMinutes = &minutes
	}
	return p, nil
}

func NormalizeDestination(d string) string {
	return strings.TrimSpace(d)
}

// InterestsToCategories drops blank interest tags; nil means "no filter".
func InterestsToCategories(interests []string) []string {
	var cats []string
	for _, i := range interests {
		if t := strings.TrimSpace(i); t != "" {
			cats = append(cats, t)
		}
	}
	return cats
}
