// server/internal/api/handlers/driver_handler.go
package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"shipping-admin-api-server/internal/listquery"
	"shipping-admin-api-server/internal/models"
	"shipping-admin-api-server/internal/store"
)

type DriverHandler struct {
	Store store.Store
}

type DriverRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	Region        string `json:"region" binding:"required"`
	SubArea       string `json:"subArea"`
	Available     bool   `json:"available"`
}

// ListDrivers returns drivers filtered by ?search= (name, phone, license
// number, region) and ?region=/?status=, optionally sorted by ?sort=name.
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	h.listByStatus(c, c.Query("status"))
}

// ListPendingDrivers is the onboarding queue sub-view.
func (h *DriverHandler) ListPendingDrivers(c *gin.Context) {
	h.listByStatus(c, models.DriverStatusPending)
}

// ListApprovedDrivers is the sub-view the assignment picker loads from.
func (h *DriverHandler) ListApprovedDrivers(c *gin.Context) {
	h.listByStatus(c, models.DriverStatusApproved)
}

func (h *DriverHandler) listByStatus(c *gin.Context, status string) {
	drivers, err := h.Store.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query drivers")
		return
	}

	search := c.Query("search")
	region := c.Query("region")
	filtered := []models.Driver{}
	for _, driver := range drivers {
		if !listquery.Matches(search, driver.Name, driver.Phone, driver.LicenseNumber, driver.Region) {
			continue
		}
		if !listquery.MatchesCategory(status, driver.Status) {
			continue
		}
		if !listquery.MatchesCategory(region, driver.Region) {
			continue
		}
		filtered = append(filtered, driver)
	}

	if c.Query("sort") == "name" {
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	}

	respondData(c, http.StatusOK, filtered)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.Store.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Driver not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve driver")
		return
	}
	respondData(c, http.StatusOK, driver)
}

// CreateDriver onboards a driver in the pending state.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	driver, err := h.Store.CreateDriver(c.Request.Context(), models.Driver{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		Region:        req.Region,
		SubArea:       req.SubArea,
		Available:     req.Available,
		Status:        models.DriverStatusPending,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create driver")
		return
	}
	respondData(c, http.StatusCreated, driver)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	driver, err := h.Store.UpdateDriver(c.Request.Context(), c.Param("id"), models.Driver{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		Region:        req.Region,
		SubArea:       req.SubArea,
		Available:     req.Available,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Driver not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update driver")
		return
	}
	respondData(c, http.StatusOK, driver)
}

// DeleteDriver refuses to remove a driver who still has shipments assigned;
// the operator must reassign those first.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	driver, err := h.Store.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Driver not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve driver")
		return
	}

	if len(driver.AssignedShipments) > 0 {
		respondError(c, http.StatusConflict, "Driver has active shipment assignments")
		return
	}

	if err := h.Store.DeleteDriver(c.Request.Context(), driver.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete driver")
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}

func (h *DriverHandler) ApproveDriver(c *gin.Context) {
	h.setStatus(c, models.DriverStatusApproved)
}

func (h *DriverHandler) RejectDriver(c *gin.Context) {
	h.setStatus(c, models.DriverStatusRejected)
}

func (h *DriverHandler) setStatus(c *gin.Context, status string) {
	driver, err := h.Store.SetDriverStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Driver not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update driver status")
		return
	}
	respondData(c, http.StatusOK, driver)
}
