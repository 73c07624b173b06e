// server/internal/api/handlers/shipment_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shipping-admin-api-server/internal/listquery"
	"shipping-admin-api-server/internal/models"
	"shipping-admin-api-server/internal/s3"
	"shipping-admin-api-server/internal/socket"
	"shipping-admin-api-server/internal/store"
	"shipping-admin-api-server/internal/timeline"
)

type ShipmentHandler struct {
	Store      store.Store
	Hub        *socket.Hub
	S3Uploader *s3.Uploader
}

type PartyRequest struct {
	Name    string         `json:"name" binding:"required"`
	Phone   string         `json:"phone" binding:"required"`
	Address models.Address `json:"address"`
}

type ShipmentRequest struct {
	Sender    PartyRequest `json:"sender" binding:"required"`
	Recipient PartyRequest `json:"recipient" binding:"required"`
	Type      string       `json:"type" binding:"required,oneof=normal documents"`
	WeightKg  *float64     `json:"weightKg"`
	Status    string       `json:"status"`
	Notes     string       `json:"notes"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverID" binding:"required"`
}

func (r ShipmentRequest) validate() map[string]string {
	fields := make(map[string]string)
	if !r.Sender.Address.Valid() {
		fields["sender.address"] = "address must be either a short code or a national address"
	}
	if !r.Recipient.Address.Valid() {
		fields["recipient.address"] = "address must be either a short code or a national address"
	}
	if r.WeightKg != nil && *r.WeightKg < 0 {
		fields["weightKg"] = "weight must not be negative"
	}
	if r.Status != "" && !models.ValidStatus(r.Status) {
		fields["status"] = "unknown shipment status"
	}
	return fields
}

// ListShipments returns shipments filtered by ?search= (tracking number,
// sender/recipient name and phone) and ?status=.
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	shipments, err := h.Store.ListShipments(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query shipments")
		return
	}
	h.respondFiltered(c, shipments)
}

// ListUnassignedShipments is the sub-view of shipments with no driver.
func (h *ShipmentHandler) ListUnassignedShipments(c *gin.Context) {
	shipments, err := h.Store.ListUnassignedShipments(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to query shipments")
		return
	}
	h.respondFiltered(c, shipments)
}

func (h *ShipmentHandler) respondFiltered(c *gin.Context, shipments []models.Shipment) {
	search := c.Query("search")
	status := c.Query("status")
	filtered := []models.Shipment{}
	for _, s := range shipments {
		if !listquery.Matches(search, s.TrackingNumber, s.Sender.Name, s.Sender.Phone, s.Recipient.Name, s.Recipient.Phone) {
			continue
		}
		if !listquery.MatchesCategory(status, s.Status) {
			continue
		}
		filtered = append(filtered, s)
	}

	if c.Query("sort") == "trackingNumber" {
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].TrackingNumber < filtered[j].TrackingNumber })
	}

	respondData(c, http.StatusOK, filtered)
}

// GetShipment returns one shipment by tracking number together with its
// derived status timeline.
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipment, err := h.Store.GetShipmentByTracking(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Shipment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shipment")
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"shipment": shipment,
		"timeline": timeline.Derive(shipment.Status),
	})
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	status := req.Status
	if status == "" {
		status = models.ShipmentStatusPending
	}

	shipment, err := h.Store.CreateShipment(c.Request.Context(), models.Shipment{
		TrackingNumber: newTrackingNumber(),
		Sender:         models.Party{Name: req.Sender.Name, Phone: req.Sender.Phone, Address: req.Sender.Address},
		Recipient:      models.Party{Name: req.Recipient.Name, Phone: req.Recipient.Phone, Address: req.Recipient.Address},
		Type:           req.Type,
		WeightKg:       req.WeightKg,
		Status:         status,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create shipment")
		return
	}
	respondData(c, http.StatusCreated, shipment)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	trackingNumber := c.Param("trackingNumber")
	previous, err := h.Store.GetShipmentByTracking(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Shipment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shipment")
		return
	}

	status := req.Status
	if status == "" {
		status = previous.Status
	}

	shipment, err := h.Store.UpdateShipment(c.Request.Context(), trackingNumber, models.Shipment{
		Sender:    models.Party{Name: req.Sender.Name, Phone: req.Sender.Phone, Address: req.Sender.Address},
		Recipient: models.Party{Name: req.Recipient.Name, Phone: req.Recipient.Phone, Address: req.Recipient.Address},
		Type:      req.Type,
		WeightKg:  req.WeightKg,
		Status:    status,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update shipment")
		return
	}

	if h.Hub != nil && shipment.Status != previous.Status {
		h.Hub.Broadcast(socket.ShipmentEvent{
			Type:           "status_changed",
			TrackingNumber: shipment.TrackingNumber,
			Status:         shipment.Status,
			At:             time.Now(),
		})
	}

	respondData(c, http.StatusOK, shipment)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	err := h.Store.DeleteShipment(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Shipment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete shipment")
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Shipment deleted successfully"})
}

// AssignDriver puts a shipment on a driver's plate. Only approved, available
// drivers are eligible; the same rules the assignment picker applies.
func (h *ShipmentHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	driver, err := h.Store.GetDriver(c.Request.Context(), req.DriverID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Driver not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve driver")
		return
	}
	if driver.Status != models.DriverStatusApproved {
		respondError(c, http.StatusConflict, "Driver is not approved")
		return
	}
	if !driver.Available {
		respondError(c, http.StatusConflict, "Driver is not available")
		return
	}

	trackingNumber := c.Param("trackingNumber")
	shipment, err := h.Store.AssignDriver(c.Request.Context(), trackingNumber, driver.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Shipment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to assign driver")
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(socket.ShipmentEvent{
			Type:           "driver_assigned",
			TrackingNumber: shipment.TrackingNumber,
			Status:         shipment.Status,
			DriverID:       driver.ID,
			At:             time.Now(),
		})
	}

	respondData(c, http.StatusOK, shipment)
}

// UploadProofPhoto stores a delivery proof photo on S3 and records its URL
// on the shipment.
func (h *ShipmentHandler) UploadProofPhoto(c *gin.Context) {
	if h.S3Uploader == nil {
		respondError(c, http.StatusServiceUnavailable, "Photo storage is not configured")
		return
	}

	trackingNumber := c.Param("trackingNumber")
	if _, err := h.Store.GetShipmentByTracking(c.Request.Context(), trackingNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Shipment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to retrieve shipment")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Photo file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("shipments/%s/proof-%s", trackingNumber, fileHeader.Filename)
	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	shipment, err := h.Store.SetShipmentProofPhoto(c.Request.Context(), trackingNumber, url)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save photo URL")
		return
	}
	respondData(c, http.StatusOK, shipment)
}

func newTrackingNumber() string {
	return fmt.Sprintf("SHP-%s", strings.ToUpper(uuid.New().String()[:8]))
}
