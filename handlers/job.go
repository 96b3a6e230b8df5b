package handlers

import (
	"net/http"
	"strconv"

	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"
	jobService "riggerbackend/services/job"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler exposes job posting endpoints.
type JobHandler struct {
	JobService jobService.JobService
}

// CreateJobHandler handles POST /api/jobs.
func (h *JobHandler) CreateJobHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Title          string  `json:"title" binding:"required"`
		Description    string  `json:"description"`
		Trade          string  `json:"trade" binding:"required"`
		Location       string  `json:"location"`
		HourlyRate     float64 `json:"hourly_rate" binding:"required"`
		EstimatedHours float64 `json:"estimated_hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employerID, _ := c.Get("userID")
	j := &models.Job{
		EmployerID:     employerID.(string),
		Title:          req.Title,
		Description:    req.Description,
		Trade:          req.Trade,
		Location:       req.Location,
		HourlyRate:     req.HourlyRate,
		EstimatedHours: req.EstimatedHours,
	}
	created, err := h.JobService.Create(c.Request.Context(), j)
	if err != nil {
		logger.Error("Failed to create job", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetJobHandler handles GET /api/jobs/:id.
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	id := c.Param("id")
	j, err := h.JobService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, j)
}

// SearchJobsHandler handles GET /api/jobs.
func (h *JobHandler) SearchJobsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	criteria := jobRepo.SearchCriteria{
		Trade:      c.Query("trade"),
		Location:   c.Query("location"),
		Status:     c.Query("status"),
		EmployerID: c.Query("employer_id"),
		WorkerID:   c.Query("worker_id"),
		Offset:     offset,
		Limit:      limit,
	}
	jobs, err := h.JobService.Search(c.Request.Context(), criteria)
	if err != nil {
		logger.Error("Job search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// UpdateJobHandler handles PATCH /api/jobs/:id.
func (h *JobHandler) UpdateJobHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.callerOwnsJob(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	j, err := h.JobService.Update(c.Request.Context(), id, fields)
	if err != nil {
		logger.Error("Failed to update job", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, j)
}

// AssignJobHandler handles POST /api/jobs/:id/assign.
func (h *JobHandler) AssignJobHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	var req struct {
		WorkerID string `json:"worker_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.callerOwnsJob(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	j, err := h.JobService.AssignWorker(c.Request.Context(), id, req.WorkerID)
	if err != nil {
		logger.Error("Failed to assign worker", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, j)
}

// CompleteJobHandler handles POST /api/jobs/:id/complete.
func (h *JobHandler) CompleteJobHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	var req struct {
		ActualHours float64 `json:"actual_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.callerOwnsJob(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	j, err := h.JobService.Complete(c.Request.Context(), id, req.ActualHours)
	if err != nil {
		logger.Error("Failed to complete job", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, j)
}

// CancelJobHandler handles POST /api/jobs/:id/cancel.
func (h *JobHandler) CancelJobHandler(c *gin.Context) {
	id := c.Param("id")
	if !h.callerOwnsJob(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err := h.JobService.Cancel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled"})
}

// DeleteJobHandler handles DELETE /api/jobs/:id.
func (h *JobHandler) DeleteJobHandler(c *gin.Context) {
	id := c.Param("id")
	if !h.callerOwnsJob(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err := h.JobService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) callerOwnsJob(c *gin.Context, jobID string) bool {
	j, err := h.JobService.GetByID(c.Request.Context(), jobID)
	if err != nil {
		return false
	}
	return callerOwnsResource(c, j.EmployerID)
}
