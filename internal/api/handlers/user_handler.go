// server/internal/api/handlers/user_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-admin-api-server/internal/listquery"
	"shipping-admin-api-server/internal/models"
	"shipping-admin-api-server/internal/store"
)

type UserHandler struct {
	Store store.Store
}

// ListUsers returns accounts filtered by ?search= (phone, store name,
// official name) and ?role=/?userType=, each with its derived shipment count.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query users")
		return
	}

	search := c.Query("search")
	role := c.Query("role")
	userType := c.Query("userType")
	filtered := []models.User{}
	for _, user := range users {
		if !listquery.Matches(search, user.Phone, user.StoreName, user.OfficialName) {
			continue
		}
		if !listquery.MatchesCategory(role, user.Role) {
			continue
		}
		if !listquery.MatchesCategory(userType, user.UserType) {
			continue
		}

		count, err := h.Store.CountShipmentsBySender(c.Request.Context(), user.Phone)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to count shipments")
			return
		}
		user.ShipmentCount = count
		filtered = append(filtered, user)
	}

	respondData(c, http.StatusOK, filtered)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	err := h.Store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
