// server/internal/api/handlers/city_handler.go
package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"shipping-admin-api-server/internal/listquery"
	"shipping-admin-api-server/internal/models"
	"shipping-admin-api-server/internal/routemap"
	"shipping-admin-api-server/internal/store"
)

type CityHandler struct {
	Store store.Store
}

type CityRequest struct {
	Name          string                      `json:"name"`
	NameEn        string                      `json:"nameEn"`
	Region        string                      `json:"region"`
	Type          string                      `json:"type"`
	Latitude      float64                     `json:"latitude"`
	Longitude     float64                     `json:"longitude"`
	Active        bool                        `json:"active"`
	LocalDelivery models.ParcelRates          `json:"localDelivery"`
	ShippingTo    map[string]models.RouteRate `json:"shippingTo"`
}

func (r CityRequest) toModel() models.City {
	shippingTo := r.ShippingTo
	if shippingTo == nil {
		shippingTo = map[string]models.RouteRate{}
	}
	return models.City{
		Name:          r.Name,
		NameEn:        r.NameEn,
		Region:        r.Region,
		Type:          r.Type,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Active:        r.Active,
		LocalDelivery: r.LocalDelivery,
		ShippingTo:    shippingTo,
	}
}

// ListCities returns all cities, filtered by ?search= (name, English name,
// region) and ?type=, optionally sorted by ?sort=name|nameEn|region.
// Filtering runs over the fetched collection, not in the store.
func (h *CityHandler) ListCities(c *gin.Context) {
	cities, err := h.Store.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query cities")
		return
	}

	search := c.Query("search")
	typeFilter := c.Query("type")
	filtered := []models.City{}
	for _, city := range cities {
		if !listquery.Matches(search, city.Name, city.NameEn, city.Region) {
			continue
		}
		if !listquery.MatchesCategory(typeFilter, city.Type) {
			continue
		}
		filtered = append(filtered, city)
	}

	switch c.Query("sort") {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	case "nameEn":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].NameEn < filtered[j].NameEn })
	case "region":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Region < filtered[j].Region })
	}

	respondData(c, http.StatusOK, filtered)
}

func (h *CityHandler) GetCity(c *gin.Context) {
	city, err := h.Store.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve city")
		return
	}
	respondData(c, http.StatusOK, city)
}

func (h *CityHandler) CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	city := req.toModel()
	if fields := routemap.ValidateCity(city); len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	created, err := h.Store.CreateCity(c.Request.Context(), city)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "City with this name already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create city")
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *CityHandler) UpdateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	city := req.toModel()
	if fields := routemap.ValidateCity(city); len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	updated, err := h.Store.UpdateCity(c.Request.Context(), c.Param("id"), city)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update city")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// DeleteCity removes one city. Routes held by other cities that point at the
// deleted one are not touched; whether to clean them up is an open question
// and no cascade is invented here.
func (h *CityHandler) DeleteCity(c *gin.Context) {
	err := h.Store.DeleteCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete city")
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "City deleted successfully"})
}

// ListDestinations returns the cities that can still be added as route
// targets for this city: everything except itself and destinations it
// already ships to.
func (h *CityHandler) ListDestinations(c *gin.Context) {
	city, err := h.Store.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve city")
		return
	}

	all, err := h.Store.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query cities")
		return
	}

	respondData(c, http.StatusOK, routemap.AvailableDestinations(city.Name, city.ShippingTo, all))
}

// AddRoute stages one new outbound route on a city. Distance and prices come
// in as strings and are coerced on validation; a failed validation leaves the
// city untouched.
func (h *CityHandler) AddRoute(c *gin.Context) {
	var req routemap.RouteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	city, err := h.Store.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve city")
		return
	}

	if req.Destination == city.Name {
		respondValidation(c, map[string]string{"destination": "a city must not hold a route to itself"})
		return
	}
	if _, exists := city.ShippingTo[req.Destination]; exists {
		respondError(c, http.StatusConflict, "Route to this city already exists")
		return
	}

	if fields := routemap.AddRoute(city.ShippingTo, req); len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	updated, err := h.Store.UpdateCity(c.Request.Context(), city.ID, city)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save route")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// RemoveRoute deletes one outbound route by destination name.
func (h *CityHandler) RemoveRoute(c *gin.Context) {
	city, err := h.Store.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "City not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve city")
		return
	}

	routemap.RemoveRoute(city.ShippingTo, c.Param("destination"))

	updated, err := h.Store.UpdateCity(c.Request.Context(), city.ID, city)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to remove route")
		return
	}
	respondData(c, http.StatusOK, updated)
}
