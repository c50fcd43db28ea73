package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/domain/repositories"
)

// PlaceService is the place behaviour the HTTP layer needs
type PlaceService interface {
	List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error)
	GetByID(ctx context.Context, placeID int64) (*entities.Place, error)
	Create(ctx context.Context, place *entities.Place) (int64, error)
	Delete(ctx context.Context, placeID int64) error
}

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	service PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service PlaceService) *PlaceHandler {
	return &PlaceHandler{
		service: service,
	}
}

// ListPlaces handles GET /api/places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.PlaceFilter{
		Categories: parseCategories(query["categories"]),
		Search:     query.Get("search"),
		Sort:       entities.ParsePlaceSort(query.Get("sort")),
	}

	places, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, places)
}

// GetPlace handles GET /api/place/{place_id}
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathInt64(r, "place_id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	place, err := h.service.GetByID(r.Context(), placeID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// AddPlace handles POST /api/add-place
func (h *PlaceHandler) AddPlace(w http.ResponseWriter, r *http.Request) {
	var place entities.Place
	if err := decodeJSON(r, &place); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	placeID, err := h.service.Create(r.Context(), &place)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Place added successfully",
		"place_id": placeID,
	})
}

// DeletePlace handles DELETE /api/delete-place/{place_id}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathInt64(r, "place_id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), placeID); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "Place deleted successfully")
}

// parseCategories returns each non-blank categories parameter as given. A
// value containing commas names a single category.
func parseCategories(values []string) []string {
	var categories []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			categories = append(categories, value)
		}
	}
	return categories
}
