package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/jobs"
	"shopadmin/internal/models"
)

// JobHandler handles HTTP requests for scheduled job inspection and manual runs
type JobHandler struct {
	manager *jobs.Manager
}

// NewJobHandler creates a new job handler
func NewJobHandler(manager *jobs.Manager) *JobHandler {
	return &JobHandler{manager: manager}
}

// JobInfo describes a registered job
type JobInfo struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// List godoc
// @Summary List scheduled jobs
// @Description Get all registered jobs with their schedules
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.JobInfo
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	registered := h.manager.Jobs()
	infos := make([]JobInfo, 0, len(registered))
	for _, j := range registered {
		infos = append(infos, JobInfo{Name: j.Name(), Schedule: j.Schedule()})
	}
	c.JSON(http.StatusOK, infos)
}

// Run godoc
// @Summary Run a job
// @Description Execute a registered job immediately, outside its schedule
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param name path string true "Job name"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Job failed"
// @Router /jobs/{name}/run [post]
func (h *JobHandler) Run(c *gin.Context) {
	name := c.Param("name")

	if err := h.manager.RunJob(c.Request.Context(), name); err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "job completed"})
}
