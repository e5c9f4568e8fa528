// Package profile provides HTTP handlers for resume/profile operations.
package profile

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// ProfileController handles the per-user resume/profile record and the
// resume AI operations.
type ProfileController struct {
	Tracker *tracker.Tracker
	AI      *ai.Client
}

// NewProfileController creates a new instance of ProfileController with the provided dependencies.
func NewProfileController(tr *tracker.Tracker, aiClient *ai.Client) *ProfileController {
	return &ProfileController{
		Tracker: tr,
		AI:      aiClient,
	}
}

// GetHandler returns the user's profile.
// @Summary Get the resume profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Profile
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /profile [get]
func (p *ProfileController) GetHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := p.Tracker.Profile(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ReplaceHandler replaces the whole profile. The profile is a single record
// that is swapped wholesale on every save, never diffed.
// @Summary Replace the resume profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body model.Profile true "Full replacement profile"
// @Success 200 {object} model.Profile
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /profile [put]
func (p *ProfileController) ReplaceHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	saved, err := p.Tracker.ReplaceProfile(c.Request.Context(), user.ID, profile)
	if err != nil {
		if errors.Is(err, tracker.ErrNoSession) {
			respondTrackerError(c, err)
			return
		}
		// Kept in memory; the durable write failed.
		c.JSON(http.StatusOK, gin.H{
			"profile": saved,
			"warning": "Profile saved locally but could not be persisted remotely",
		})
		return
	}
	c.JSON(http.StatusOK, saved)
}

type themeInfo struct {
	Theme string `json:"theme" binding:"required"`
}

var allowedThemes = []string{"light", "dark"}

// GetThemeHandler reads the stored light/dark preference.
// @Summary Get theme preference
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]string
// @Router /profile/theme [get]
func (p *ProfileController) GetThemeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	theme, err := p.Tracker.Theme(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	if theme == "" {
		theme = "light"
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetThemeHandler stores the light/dark preference.
// @Summary Set theme preference
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param theme body themeInfo true "light or dark"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Router /profile/theme [put]
func (p *ProfileController) SetThemeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info themeInfo
	if err := c.ShouldBindJSON(&info); err != nil || !utilities.Contains(allowedThemes, info.Theme) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Theme must be 'light' or 'dark'",
		})
		return
	}

	if err := p.Tracker.SetTheme(c.Request.Context(), user.ID, info.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Theme saved"})
}

type resumeText struct {
	Text string `json:"text" binding:"required"`
}

// ParseResumeHandler extracts structured profile data from raw resume text.
// @Summary Parse raw resume text into structured profile data
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume body resumeText true "Raw resume text"
// @Success 200 {object} ai.ParsedResume
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /profile/resume/parse [post]
func (p *ProfileController) ParseResumeHandler(c *gin.Context) {
	var info resumeText
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Resume text must be provided"})
		return
	}

	parsed, err := p.AI.ParseResume(c.Request.Context(), info.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse resume: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// EnhanceResumeHandler rewrites the current profile content for impact.
// @Summary Enhance the current resume content
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} ai.ResumeEnhancement
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /profile/resume/enhance [post]
func (p *ProfileController) EnhanceResumeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := p.Tracker.Profile(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	enhanced, err := p.AI.EnhanceResume(c.Request.Context(), profile)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to enhance resume: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, enhanced)
}

// TailorResumeHandler rewrites the current profile content toward one job.
// @Summary Tailor the resume toward a tracked job
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} ai.ResumeEnhancement
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /profile/resume/tailor/{id} [post]
func (p *ProfileController) TailorResumeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, job, ok := p.profileAndJob(c, user.ID)
	if !ok {
		return
	}

	tailored, err := p.AI.TailorResume(c.Request.Context(), profile, job)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to tailor resume: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, tailored)
}

type scoreRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
}

// ScoreResumeHandler grades the current profile against a job description.
// @Summary Score the resume against a job description
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param request body scoreRequest true "Job description to score against"
// @Success 200 {object} ai.ResumeScore
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /profile/resume/score [post]
func (p *ProfileController) ScoreResumeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info scoreRequest
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Job description must be provided"})
		return
	}

	profile, err := p.Tracker.Profile(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	score, err := p.AI.ScoreResume(c.Request.Context(), profile, info.JobDescription)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to score resume: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, score)
}

// AvatarHandler transforms an uploaded photo into a styled avatar.
// @Summary Transform an uploaded photo into a professional avatar
// @Tags Profile
// @Accept mpfd
// @Produce png
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param image formData file true "Photo to transform"
// @Param style formData string false "Styling instruction"
// @Success 200 {file} binary
// @Failure 400 {object} utilities.ErrorResponse "Missing or unreadable image"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /profile/avatar [post]
func (p *ProfileController) AvatarHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Image file must be provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Failed to read image file"})
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Failed to read image file"})
		return
	}

	out, err := p.AI.TransformAvatar(c.Request.Context(), image, c.PostForm("style"))
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to transform avatar: %s", err.Error()),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}

// profileAndJob loads the profile and the path-addressed job, writing the
// error response itself when either is unavailable.
func (p *ProfileController) profileAndJob(c *gin.Context, userID uuid.UUID) (model.Profile, model.Job, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return model.Profile{}, model.Job{}, false
	}

	profile, err := p.Tracker.Profile(userID)
	if err != nil {
		respondTrackerError(c, err)
		return model.Profile{}, model.Job{}, false
	}

	jobs, err := p.Tracker.Jobs(userID)
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
