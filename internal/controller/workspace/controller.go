// Package workspace provides HTTP handlers for whole-workspace operations:
// the JSON export download and the onboarding demo seed.
package workspace

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// WorkspaceController handles export and demo-seed endpoints.
type WorkspaceController struct {
	Tracker *tracker.Tracker
}

// NewWorkspaceController creates a new instance of WorkspaceController with the provided tracker.
func NewWorkspaceController(tr *tracker.Tracker) *WorkspaceController {
	return &WorkspaceController{
		Tracker: tr,
	}
}

// ExportHandler serializes the user's jobs, profile and statistics into a
// downloadable JSON document. There is no import path for this format.
// @Summary Export tracked data as a JSON download
// @Tags Workspace
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} tracker.ExportBundle
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /export [get]
func (w *WorkspaceController) ExportHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	bundle, err := w.Tracker.Export(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	filename := fmt.Sprintf("jobjumper-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, bundle)
}

// DemoSeedHandler overwrites the profile and inserts illustrative records.
// @Summary Seed the workspace with demo data
// @Description Overwrites the current profile and inserts illustrative jobs, chat messages and a report
// @Tags Workspace
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /demo [post]
func (w *WorkspaceController) DemoSeedHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := w.Tracker.SeedDemoData(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, tracker.ErrNoSession) {
			respondTrackerError(c, err)
			return
		}
		c.JSON(http.StatusOK, utilities.MessageResponse{
			Message: "Demo data seeded locally but some remote writes failed",
		})
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Demo data seeded"})
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
