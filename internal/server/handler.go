package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// Handler serves the county_data endpoint.
type Handler struct {
	store *Store
}

// NewHandler returns a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Health reports that the service is up. Used by load balancers and
// monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// CountyData handles POST /county_data. The body must be a JSON object
// with a 5-digit "zip" and a recognized "measure_name"; matching ranking
// rows come back as a JSON array of column-to-value objects.
func (h *Handler) CountyData(c echo.Context) error {
	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil || payload == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Request body must be JSON"})
	}

	// Easter egg mandated by the dataset's original API: a coffee=teapot
	// field short-circuits everything else.
	if payload["coffee"] == "teapot" {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "Request rejected: I'm a teapot."})
	}

	zipValue, zipPresent := payload["zip"]
	measureValue, measurePresent := payload["measure_name"]
	if !zipPresent || !measurePresent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Both 'zip' and 'measure_name' are required"})
	}

	zip, ok := zipValue.(string)
	if !ok || !zipPattern.MatchString(zip) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "zip must be a 5-digit string"})
	}

	measure, ok := measureValue.(string)
	if !ok || !isAllowedMeasure(measure) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "measure_name must be one of the documented measures"})
	}

	records, err := h.store.CountyData(c.Request().Context(), zip, measure)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No matching records found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, records)
}
