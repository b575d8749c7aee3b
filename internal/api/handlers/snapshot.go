package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// SnapshotHandler handles HTTP requests for inventory snapshots
type SnapshotHandler struct {
	snapshotRepo repository.SnapshotRepository
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshotRepo repository.SnapshotRepository) *SnapshotHandler {
	return &SnapshotHandler{snapshotRepo: snapshotRepo}
}

// List godoc
// @Summary List inventory snapshots
// @Description Get recorded inventory snapshots for a period, newest first
// @Tags snapshots
// @Produce json
// @Security BearerAuth
// @Param period query string false "Snapshot period" Enums(daily, monthly, yearly) default(daily)
// @Param limit query int false "Maximum records to return" default(30)
// @Success 200 {array} models.InventorySnapshot
// @Failure 400 {object} models.ErrorResponse "Invalid filter"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /inventory-snapshots [get]
func (h *SnapshotHandler) List(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")
	switch period {
	case "daily", "monthly", "yearly":
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid period filter"})
		return
	}

	limit := 30
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit filter"})
			return
		}
		limit = parsed
	}

	snapshots, err := h.snapshotRepo.List(c.Request.Context(), period, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}
