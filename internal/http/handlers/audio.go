package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storynest-backend/internal/http/response"
	"github.com/yungbote/storynest-backend/internal/services"
)

type AudioHandler struct {
	uploadService services.UploadService
}

func NewAudioHandler(uploadService services.UploadService) *AudioHandler {
	return &AudioHandler{uploadService: uploadService}
}

func (ah *AudioHandler) GetUploadURL(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	fileName := c.Query("fileName")
	contentType := c.Query("contentType")
	ticket, err := ah.uploadService.IssueUpload(c.Request.Context(), storyID, fileName, contentType)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, ticket)
}

func (ah *AudioHandler) ConfirmUpload(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		S3Key    string `json:"s3Key"`
		FileName string `json:"fileName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	audio, err := ah.uploadService.ConfirmUpload(c.Request.Context(), storyID, req.S3Key, req.FileName)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"audioId": audio.ID})
}

// LegacyUpload accepts a multipart form with an "audio" file part and
// stores it on local disk.
func (ah *AudioHandler) LegacyUpload(c *gin.Context) {
	storyID, ok := parseIDParam(c, "sid")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	audio, err := ah.uploadService.LegacyUpload(c.Request.Context(), storyID, fileHeader.Filename, file)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"audioId": audio.ID})
}

func (ah *AudioHandler) ListAudios(c *gin.Context) {
	audios, err := ah.uploadService.ListAudios(c.Request.Context())
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, audios)
}

func (ah *AudioHandler) FinalFeedback(c *gin.Context) {
	audioID, ok := parseIDParam(c, "aid")
	if !ok {
		return
	}
	feedback, err := ah.uploadService.GetAudioFeedback(c.Request.Context(), audioID)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, feedback)
}
