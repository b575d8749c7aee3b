package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopadmin/internal/auth"
	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// LoginHistoryHandler handles HTTP requests for the login audit trail
type LoginHistoryHandler struct {
	historyRepo repository.LoginHistoryRepository
}

// NewLoginHistoryHandler creates a new login history handler
func NewLoginHistoryHandler(historyRepo repository.LoginHistoryRepository) *LoginHistoryHandler {
	return &LoginHistoryHandler{historyRepo: historyRepo}
}

// List godoc
// @Summary List login history
// @Description Get login audit records, newest first, optionally filtered
// @Tags login-history
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter by user id"
// @Param device_type query string false "Filter by device type" Enums(desktop, mobile, tablet, unknown)
// @Param after query string false "Records created after (RFC3339)"
// @Param before query string false "Records created before (RFC3339)"
// @Param limit query int false "Maximum records to return"
// @Param offset query int false "Records to skip"
// @Success 200 {array} models.LoginHistory
// @Failure 400 {object} models.ErrorResponse "Invalid filter"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-history [get]
func (h *LoginHistoryHandler) List(c *gin.Context) {
	filter := repository.LoginHistoryFilter{}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user_id filter"})
			return
		}
		filter.UserID = &userID
	}

	if deviceStr := c.Query("device_type"); deviceStr != "" {
		device := models.DeviceType(deviceStr)
		switch device {
		case models.DeviceDesktop, models.DeviceMobile, models.DeviceTablet, models.DeviceUnknown:
			filter.DeviceType = &device
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid device_type filter"})
			return
		}
	}

	if afterStr := c.Query("after"); afterStr != "" {
		after, err := time.Parse(time.RFC3339, afterStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid after filter"})
			return
		}
		filter.CreatedAfter = &after
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		before, err := time.Parse(time.RFC3339, beforeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid before filter"})
			return
		}
		filter.CreatedBefore = &before
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit filter"})
			return
		}
		filter.Limit = &limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid offset filter"})
			return
		}
		filter.Offset = &offset
	}

	records, err := h.historyRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list login history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Me godoc
// @Summary Own login history
// @Description Get the authenticated user's own login records, newest first
// @Tags login-history
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} models.LoginHistory
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-history/me [get]
func (h *LoginHistoryHandler) Me(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		return
	}

	filter := repository.LoginHistoryFilter{UserID: &user.ID}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit filter"})
			return
		}
		filter.Limit = &limit
	}

	records, err := h.historyRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list login history"})
		return
	}

	c.JSON(http.StatusOK, records)
}
