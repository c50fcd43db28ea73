package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/touristtalks/backend/pkg/errors"
)

// PlaceAdapter implements the PlaceRepository interface. The full place
// document lives in a JSONB column; site_name, rating and categories are
// copied into their own columns for filtering and ordering.
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// NextID reserves a new place id
func (a *PlaceAdapter) NextID(ctx context.Context) (int64, error) {
	return nextSequenceValue(ctx, a.client, "place_id_seq")
}

// Create stores a new place
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	if place == nil {
		return apperrors.NewInternalError("place is nil", fmt.Errorf("place is nil"))
	}

	document, err := json.Marshal(place)
	if err != nil {
		return apperrors.NewInternalError("failed to encode place document", err)
	}

	record := goqu.Record{
		"place_id":   place.PlaceID,
		"site_name":  place.SiteName,
		"rating":     place.Rating,
		"categories": pq.Array(nonNil(place.Categories)),
		"document":   string(document),
	}

	query, args, err := a.db.Insert("places").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return translateWriteError(err, "failed to create place")
	}

	return nil
}

// GetByID retrieves a place by place_id
func (a *PlaceAdapter) GetByID(ctx context.Context, placeID int64) (*entities.Place, error) {
	query, args, err := a.db.Select("document").
		From("places").
		Where(goqu.Ex{"place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var document []byte
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("Place not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get place", err)
	}

	return decodePlace(document)
}

// List retrieves places matching every filter that is set
func (a *PlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error) {
	ds := a.db.Select("document").From("places")

	if len(filter.Categories) > 0 {
		ds = ds.Where(goqu.L(`"categories" @> ?`, pq.Array(filter.Categories)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		ds = ds.Where(goqu.I("site_name").ILike("%" + escapeLike(search) + "%"))
	}

	switch filter.Sort {
	case entities.PlaceSortName:
		ds = ds.Order(goqu.I("site_name").Asc(), goqu.I("place_id").Asc())
	case entities.PlaceSortRating:
		ds = ds.Order(goqu.I("rating").Desc(), goqu.I("place_id").Asc())
	default:
		ds = ds.Order(goqu.I("place_id").Asc())
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	places := make([]*entities.Place, 0)
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		place, err := decodePlace(document)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate places", err)
	}

	return places, nil
}

// Delete removes a place
func (a *PlaceAdapter) Delete(ctx context.Context, placeID int64) error {
	query, args, err := a.db.Delete("places").
		Where(goqu.Ex{"place_id": placeID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete place", err)
	}

	return nil
}

func decodePlace(document []byte) (*entities.Place, error) {
	place := &entities.Place{}
	if err := json.Unmarshal(document, place); err != nil {
		return nil, apperrors.NewInternalError("failed to decode place document", err)
	}
	return place, nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
