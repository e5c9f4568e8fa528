// Package job provides HTTP handlers for job record operations.
package job

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// JobController handles job record endpoints on top of the tracker.
type JobController struct {
	Tracker *tracker.Tracker
}

// NewJobController creates a new instance of JobController with the provided tracker.
func NewJobController(tr *tracker.Tracker) *JobController {
	return &JobController{
		Tracker: tr,
	}
}

// jobResponse carries the record plus a warning when the change was applied
// in memory but the durable write failed.
type jobResponse struct {
	Job     model.Job `json:"job"`
	Warning string    `json:"warning,omitempty"`
}

const notPersistedWarning = "Change saved locally but could not be persisted remotely"

// ListHandler returns the user's job records, newest first.
// @Summary List tracked jobs
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /jobs [get]
func (j *JobController) ListHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs, err := j.Tracker.Jobs(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// StatsHandler returns aggregate counts derived from the in-memory jobs.
// @Summary Job statistics by status
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} tracker.Stats
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /jobs/stats [get]
func (j *JobController) StatsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := j.Tracker.Stats(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateHandler adds a job record.
// @Summary Add a job record
// @Description The record is applied in memory first; a 201 with a warning means the remote write failed
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body model.EditableJobInfo true "Job information"
// @Success 201 {object} jobResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /jobs [post]
func (j *JobController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job, err := j.Tracker.AddJob(c.Request.Context(), user.ID, info)
	if err != nil {
		if errors.Is(err, tracker.ErrNoSession) {
			respondTrackerError(c, err)
			return
		}
		c.JSON(http.StatusCreated, jobResponse{Job: job, Warning: notPersistedWarning})
		return
	}
	c.JSON(http.StatusCreated, jobResponse{Job: job})
}

// UpdateHandler applies a partial patch to a job record. Fields absent from
// the body keep their prior value.
// @Summary Patch a job record
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param patch body model.EditableJobInfo true "Fields to change"
// @Success 200 {object} jobResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} jobResponse "Lost update: the record changed remotely since hydration"
// @Router /jobs/{id} [patch]
func (j *JobController) UpdateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var patch model.EditableJobInfo
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job, err := j.Tracker.UpdateJob(c.Request.Context(), user.ID, id, patch)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, jobResponse{Job: job})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
	case errors.Is(err, store.ErrVersionConflict):
		c.JSON(http.StatusConflict, jobResponse{Job: job, Warning: "Record changed remotely, your edit was kept locally only"})
	case errors.Is(err, tracker.ErrNoSession):
		respondTrackerError(c, err)
	default:
		c.JSON(http.StatusOK, jobResponse{Job: job, Warning: notPersistedWarning})
	}
}

// DeleteHandler removes a job record.
// @Summary Delete a job record
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (j *JobController) DeleteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	err = j.Tracker.DeleteJob(c.Request.Context(), user.ID, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
	case errors.Is(err, tracker.ErrNoSession):
		respondTrackerError(c, err)
	default:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job removed locally but the remote delete failed"})
	}
}

func respondTrackerError(c *gin.Context, err error) {
	if errors.Is(err, tracker.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "No active session, please sign in again",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
}
