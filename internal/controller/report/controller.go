// Package report provides HTTP handlers for research and prep-kit reports.
package report

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// ReportController handles company-research and interview-prep reports.
type ReportController struct {
	Tracker *tracker.Tracker
	AI      *ai.Client
}

// NewReportController creates a new instance of ReportController with the provided dependencies.
func NewReportController(tr *tracker.Tracker, aiClient *ai.Client) *ReportController {
	return &ReportController{
		Tracker: tr,
		AI:      aiClient,
	}
}

type generateRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// decodedReportView pairs a stored report with its defensively decoded
// content. Legacy rows come back as plain text instead of failing.
type decodedReportView struct {
	ID        uuid.UUID           `json:"id"`
	Company   string              `json:"company"`
	Role      string              `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
	Content   model.DecodedReport `json:"content"`
}

func decodedView(r model.ReportCommon) decodedReportView {
	return decodedReportView{
		ID:        r.ID,
		Company:   r.Company,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
		Content:   model.DecodeReportContent(r.Content),
	}
}

// GenerateResearchHandler runs company research and stores the result.
// @Summary Generate and store a company research report
// @Tags Report
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param request body generateRequest true "Company and target role"
// @Success 201 {object} decodedReportView
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /reports/research [post]
func (r *ReportController) GenerateResearchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info generateRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Company and role must be provided"})
		return
	}

	research, err := r.AI.ResearchCompany(c.Request.Context(), info.Company, info.Role)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to research company: %s", err.Error()),
		})
		return
	}

	content, err := model.EncodeReportContent(research)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	report, err := r.Tracker.AddResearchReport(c.Request.Context(), user.ID, info.Company, info.Role, content)
	if err != nil && errors.Is(err, tracker.ErrNoSession) {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, decodedView(report.ReportCommon))
}

// ListResearchHandler returns the stored research reports, newest first.
// @Summary List company research reports
// @Tags Report
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} decodedReportView
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /reports/research [get]
func (r *ReportController) ListResearchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	reports, err := r.Tracker.ResearchReports(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	views := make([]decodedReportView, 0, len(reports))
	for _, rep := range reports {
		views = append(views, decodedView(rep.ReportCommon))
	}
	c.JSON(http.StatusOK, views)
}

// DeleteResearchHandler removes a research report.
// @Summary Delete a company research report
// @Tags Report
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Report id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Report not found"
// @Router /reports/research/{id} [delete]
func (r *ReportController) DeleteResearchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid report id"})
		return
	}

	err = r.Tracker.DeleteResearchReport(c.Request.Context(), user.ID, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Report deleted"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Report not found"})
	case errors.Is(err, tracker.ErrNoSession):
		respondTrackerError(c, err)
	default:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Report removed locally but the remote delete failed"})
	}
}

// GeneratePrepHandler builds an interview-prep kit and stores the result.
// @Summary Generate and store an interview-prep kit
// @Tags Report
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param request body generateRequest true "Company and target role"
// @Success 201 {object} decodedReportView
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /reports/prep [post]
func (r *ReportController) GeneratePrepHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info generateRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Company and role must be provided"})
		return
	}

	profile, err := r.Tracker.Profile(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	kit, err := r.AI.PrepKit(c.Request.Context(), profile, model.Job{
		EditableJobInfo: model.EditableJobInfo{Company: info.Company, Role: info.Role},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to build prep kit: %s", err.Error()),
		})
		return
	}

	content, err := model.EncodeReportContent(kit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	report, err := r.Tracker.AddPrepReport(c.Request.Context(), user.ID, info.Company, info.Role, content)
	if err != nil && errors.Is(err, tracker.ErrNoSession) {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, decodedView(report.ReportCommon))
}

// ListPrepHandler returns the stored prep kits, newest first.
// @Summary List interview-prep kits
// @Tags Report
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} decodedReportView
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /reports/prep [get]
func (r *ReportController) ListPrepHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	reports, err := r.Tracker.PrepReports(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	views := make([]decodedReportView, 0, len(reports))
	for _, rep := range reports {
		views = append(views, decodedView(rep.ReportCommon))
	}
	c.JSON(http.StatusOK, views)
}

// DeletePrepHandler removes a prep kit.
// @Summary Delete an interview-prep kit
// @Tags Report
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Report id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Report not found"
// @Router /reports/prep/{id} [delete]
func (r *ReportController) DeletePrepHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid report id"})
		return
	}

	err = r.Tracker.DeletePrepReport(c.Request.Context(), user.ID, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Report deleted"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Report not found"})
	case errors.Is(err, tracker.ErrNoSession):
		respondTrackerError(c, err)
	default:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Report removed locally but the remote delete failed"})
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
