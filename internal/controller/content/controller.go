// Package content provides HTTP handlers for per-job generated content.
package content

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// ContentController handles generation endpoints whose output the client
// writes back through the ordinary job update path.
type ContentController struct {
	Tracker *tracker.Tracker
	AI      *ai.Client
}

// NewContentController creates a new instance of ContentController with the provided dependencies.
func NewContentController(tr *tracker.Tracker, aiClient *ai.Client) *ContentController {
	return &ContentController{
		Tracker: tr,
		AI:      aiClient,
	}
}

type textResult struct {
	Content string `json:"content"`
}

// CoverLetterHandler drafts a cover letter for a tracked job.
// @Summary Generate a cover letter for a tracked job
// @Tags Content
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} textResult
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /content/cover-letter/{id} [post]
func (cc *ContentController) CoverLetterHandler(c *gin.Context) {
	cc.generateText(c, func(c *gin.Context, profile model.Profile, job model.Job) (string, error) {
		return cc.AI.CoverLetter(c.Request.Context(), profile, job)
	})
}

// InterviewGuideHandler builds a markdown interview guide for a tracked job.
// @Summary Generate an interview guide for a tracked job
// @Tags Content
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} textResult
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /content/interview-guide/{id} [post]
func (cc *ContentController) InterviewGuideHandler(c *gin.Context) {
	cc.generateText(c, func(c *gin.Context, profile model.Profile, job model.Job) (string, error) {
		return cc.AI.InterviewGuide(c.Request.Context(), profile, job)
	})
}

// NegotiationStrategyHandler builds a markdown negotiation strategy for a
// tracked job.
// @Summary Generate a salary negotiation strategy for a tracked job
// @Tags Content
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} textResult
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /content/negotiation-strategy/{id} [post]
func (cc *ContentController) NegotiationStrategyHandler(c *gin.Context) {
	cc.generateText(c, func(c *gin.Context, profile model.Profile, job model.Job) (string, error) {
		return cc.AI.NegotiationStrategy(c.Request.Context(), profile, job)
	})
}

// JobMatchHandler analyzes how well the profile fits a tracked job.
// @Summary Analyze profile fit for a tracked job
// @Tags Content
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} ai.JobMatchAnalysis
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /content/job-match/{id} [post]
func (cc *ContentController) JobMatchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, job, ok := cc.profileAndJob(c, user.ID)
	if !ok {
		return
	}

	analysis, err := cc.AI.JobMatch(c.Request.Context(), profile, job)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to analyze match: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type documentRequest struct {
	Kind         string `json:"kind" binding:"required"`
	Instructions string `json:"instructions"`
}

// DocumentHandler generates an arbitrary application document for a tracked
// job.
// @Summary Generate an application document for a tracked job
// @Tags Content
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param request body documentRequest true "Document kind and optional instructions"
// @Success 200 {object} textResult
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /content/document/{id} [post]
func (cc *ContentController) DocumentHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info documentRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Document kind must be provided"})
		return
	}

	profile, job, ok := cc.profileAndJob(c, user.ID)
	if !ok {
		return
	}

	doc, err := cc.AI.Document(c.Request.Context(), profile, job, info.Kind, info.Instructions)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate document: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, textResult{Content: doc})
}

func (cc *ContentController) generateText(c *gin.Context, gen func(*gin.Context, model.Profile, model.Job) (string, error)) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, job, ok := cc.profileAndJob(c, user.ID)
	if !ok {
		return
	}

	content, err := gen(c, profile, job)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate content: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, textResult{Content: content})
}

func (cc *ContentController) profileAndJob(c *gin.Context, userID uuid.UUID) (model.Profile, model.Job, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return model.Profile{}, model.Job{}, false
	}

	profile, err := cc.Tracker.Profile(userID)
	if err != nil {
		respondTrackerError(c, err)
		return model.Profile{}, model.Job{}, false
	}

	jobs, err := cc.Tracker.Jobs(userID)
	if err != nil {
		respondTrackerError(c, err)
		return model.Profile{}, model.Job{}, false
	}
	for _, j := range jobs {
		if j.ID == id {
			return profile, j, true
		}
	}
	c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
	return model.Profile{}, model.Job{}, false
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
