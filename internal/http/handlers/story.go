package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storynest-backend/internal/http/response"
	"github.com/yungbote/storynest-backend/internal/pkg/ctxutil"
	"github.com/yungbote/storynest-backend/internal/services"
)

type StoryHandler struct {
	storyService      services.StoryService
	assessmentService services.AssessmentService
}

func NewStoryHandler(storyService services.StoryService, assessmentService services.AssessmentService) *StoryHandler {
	return &StoryHandler{storyService: storyService, assessmentService: assessmentService}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}

func (sh *StoryHandler) Create(c *gin.Context) {
	var req services.CreateStoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	story, err := sh.storyService.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "Story created successfully",
		"story":   story,
	})
}

func (sh *StoryHandler) GetStory(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	story, err := sh.storyService.Get(c.Request.Context(), userID, storyID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"story": story})
}

func (sh *StoryHandler) ListStories(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "uid")
	if !ok {
		return
	}
	stories, err := sh.storyService.ListByUser(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stories": stories})
}

func (sh *StoryHandler) GetFullStory(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	wholeStory, err := sh.storyService.FullText(c.Request.Context(), storyID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"wholeStory": wholeStory})
}

// GetQuestions answers 200 with the existing assignment or 201 with a
// freshly generated one.
func (sh *StoryHandler) GetQuestions(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	assignment, created, err := sh.assessmentService.GetOrCreateAssignment(c.Request.Context(), userID, storyID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	if created {
		response.RespondCreated(c, gin.H{"assignment": assignment})
		return
	}
	response.RespondOK(c, gin.H{"assignment": assignment})
}

func (sh *StoryHandler) SubmitFeedback(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		Answers []string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	feedback, err := sh.assessmentService.Grade(c.Request.Context(), userID, storyID, req.Answers)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"feedback": feedback})
}

func (sh *StoryHandler) GetFeedback(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	feedback, err := sh.assessmentService.GetFeedback(c.Request.Context(), userID, storyID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"feedback": feedback})
}
