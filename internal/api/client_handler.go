package api

import (
	"errors"
	"net/http"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientHandler exposes the endpoints clients use for their own data.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// --- DTOs ---

type RecordProgressRequest struct {
	Weight       float64  `json:"weight" binding:"required,gt=0"`
	BodyFat      *float64 `json:"bodyFat" binding:"omitempty,gt=0"`
	MuscleMass   *float64 `json:"muscleMass" binding:"omitempty,gt=0"`
	Measurements string   `json:"measurements"`
	Notes        string   `json:"notes"`
}

// --- Handler Methods ---

// Dashboard godoc
// @Summary Client dashboard
// @Description Latest enrollment with plan, derived status, documents, media slots and trainer comments.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ClientDashboard
// @Failure 404 {object} gin.H "No enrollment"
// @Router /client/dashboard [get]
func (h *ClientHandler) Dashboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	dash, err := h.clientService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoEnrollment), errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard.")
		}
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ListProgress godoc
// @Summary Progress history
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Progress
// @Failure 404 {object} gin.H "No enrollment"
// @Router /client/progress [get]
func (h *ClientHandler) ListProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progress, err := h.clientService.ListProgress(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoEnrollment) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list progress.")
		}
		return
	}
	if progress == nil {
		progress = []domain.Progress{}
	}
	c.JSON(http.StatusOK, progress)
}

// RecordProgress godoc
// @Summary Record a progress snapshot
// @Description Allowed on day 0, every 15th day and the plan's final day; one snapshot per day. A too-early attempt returns 400 with the next allowed day.
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body RecordProgressRequest true "Body metrics"
// @Success 201 {object} domain.Progress
// @Failure 400 {object} gin.H "Outside the review cadence or already recorded today"
// @Failure 403 {object} gin.H "Enrollment expired"
// @Router /client/progress [post]
func (h *ClientHandler) RecordProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	progress, err := h.clientService.RecordProgress(c.Request.Context(), userID, service.RecordProgressInput{
		Weight:       req.Weight,
		BodyFat:      req.BodyFat,
		MuscleMass:   req.MuscleMass,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	})
	if err != nil {
		var tooEarly *service.ProgressTooEarlyError
		switch {
		case errors.As(err, &tooEarly):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":         tooEarly.Error(),
				"dayNumber":     tooEarly.DayNumber,
				"nextReviewDay": tooEarly.NextReviewDay,
			})
		case errors.Is(err, service.ErrProgressDuplicate):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoEnrollment):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEnrollmentExpired):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrProgressValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record progress.")
		}
		return
	}
	c.JSON(http.StatusCreated, progress)
}

// UploadMedia godoc
// @Summary Upload own enrollment media
// @Description Clients may fill the DAY_1_VIDEO and FINAL_VIDEO slots; re-uploading replaces the previous file.
// @Tags Client
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param type formData string true "DAY_1_VIDEO | FINAL_VIDEO"
// @Param file formData file true "Video file"
// @Success 201 {object} domain.Media
// @Failure 403 {object} gin.H "Slot not client-uploadable or enrollment expired"
// @Router /client/media [post]
func (h *ClientHandler) UploadMedia(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	mediaType := domain.MediaType(c.PostForm("type"))
	file, err := readUploadedFile(c, "file", domain.MaxVideoSize)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	media, err := h.clientService.UploadMedia(c.Request.Context(), userID, mediaType, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaTypeForbidden), errors.Is(err, service.ErrEnrollmentExpired):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrNoEnrollment):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to upload media.")
		}
		return
	}
	c.JSON(http.StatusCreated, media)
}

// DownloadDocument godoc
// @Summary Get a download link for an own document
// @Description Issues a short-lived presigned URL for one of the client's own documents.
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param docId path string true "Document ID"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "Document not found"
// @Router /client/documents/{docId}/download [get]
func (h *ClientHandler) DownloadDocument(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	documentID, ok := parseObjectIDParam(c, "docId")
	if !ok {
		return
	}

	url, err := h.clientService.DocumentDownloadURL(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download link.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// UploadVideo godoc
// @Summary Upload a personal video
// @Description Accepts mp4/avi/mov uploads up to 100MB.
// @Tags Client
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string false "Title (defaults to the filename)"
// @Param description formData string false "Description"
// @Param file formData file true "Video file"
// @Success 201 {object} domain.UserVideo
// @Failure 400 {object} gin.H "Unsupported format or too large"
// @Router /client/videos [post]
func (h *ClientHandler) UploadVideo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	file, err := readUploadedFile(c, "file", domain.MaxVideoSize)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.clientService.UploadVideo(c.Request.Context(), userID, c.PostForm("title"), c.PostForm("description"), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoUnsupported), errors.Is(err, service.ErrVideoTooLarge):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to upload video.")
		}
		return
	}
	c.JSON(http.StatusCreated, video)
}

// ListVideos godoc
// @Summary List own videos
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.UserVideo
// @Router /client/videos [get]
func (h *ClientHandler) ListVideos(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	videos, err := h.clientService.ListVideos(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list videos.")
		return
	}
	if videos == nil {
		videos = []domain.UserVideo{}
	}
	c.JSON(http.StatusOK, videos)
}

// DeleteVideo godoc
// @Summary Delete an own video
// @Tags Client
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Video not found"
// @Router /client/videos/{id} [delete]
func (h *ClientHandler) DeleteVideo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	videoID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteVideo(c.Request.Context(), userID, videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete video.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
