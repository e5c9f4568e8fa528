// Package chat provides HTTP handlers for the assistant chat transcript.
package chat

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// ChatController handles the assistant transcript endpoints.
type ChatController struct {
	Tracker *tracker.Tracker
	AI      *ai.Client
}

// NewChatController creates a new instance of ChatController with the provided dependencies.
func NewChatController(tr *tracker.Tracker, aiClient *ai.Client) *ChatController {
	return &ChatController{
		Tracker: tr,
		AI:      aiClient,
	}
}

type chatInput struct {
	Text string `json:"text" binding:"required"`
}

// GetHandler returns the transcript, seeding a greeting on the first view.
// @Summary Get the chat transcript
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ChatMessage
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /chat [get]
func (ch *ChatController) GetHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	transcript, err := ch.Tracker.Chat(c.Request.Context(), user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// MessageHandler appends the user's message, asks the assistant for a reply
// with the user's jobs and profile as context, and appends that reply. A
// failed generation leaves the user's message in the transcript and reports
// the failure inline.
// @Summary Send a message to the assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param message body chatInput true "Message text"
// @Success 200 {array} model.ChatMessage
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Failure 502 {object} utilities.ErrorResponse "Generation failed"
// @Router /chat [post]
func (ch *ChatController) MessageHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info chatInput
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Message text must be provided"})
		return
	}

	transcript, err := ch.Tracker.AppendChat(c.Request.Context(), user.ID, model.ChatMessage{
		Role:      model.ChatRoleUser,
		Text:      info.Text,
		Timestamp: time.Now(),
	})
	if err != nil && errors.Is(err, tracker.ErrNoSession) {
		respondTrackerError(c, err)
		return
	}

	profile, err := ch.Tracker.Profile(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	jobs, err := ch.Tracker.Jobs(user.ID)
	if err != nil {
		respondTrackerError(c, err)
		return
	}

	reply, err := ch.AI.Chat(c.Request.Context(), profile, jobs, transcript, info.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, utilities.ErrorResponse{
			Error: fmt.Sprintf("Assistant is unavailable: %s", err.Error()),
		})
		return
	}

	transcript, err = ch.Tracker.AppendChat(c.Request.Context(), user.ID, model.ChatMessage{
		Role:      model.ChatRoleModel,
		Text:      reply,
		Timestamp: time.Now(),
	})
	if err != nil && errors.Is(err, tracker.ErrNoSession) {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// ClearHandler empties the transcript everywhere so a reload cannot restore
// a stale copy.
// @Summary Clear the chat transcript
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "No active session"
// @Router /chat [delete]
func (ch *ChatController) ClearHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := ch.Tracker.ClearChat(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, tracker.ErrNoSession) {
			respondTrackerError(c, err)
			return
		}
		c.JSON(http.StatusOK, utilities.MessageResponse{
			Message: "Transcript cleared locally but a persistence target failed",
		})
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Transcript cleared"})
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
