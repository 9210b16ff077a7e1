package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/cloudhire/cloudhire-backend/internal/apperr"
	"github.com/cloudhire/cloudhire-backend/internal/dtos"
	"github.com/cloudhire/cloudhire-backend/internal/uploads"
)

// UploadHandler serves POST /uploads/cv. Presigner may be nil when no bucket
// is configured.
type UploadHandler struct {
	Presigner *uploads.Presigner
}

func NewUploadHandler(p *uploads.Presigner) *UploadHandler {
	return &UploadHandler{Presigner: p}
}

func (h *UploadHandler) PresignCV(c *gin.Context) {
	if h.Presigner == nil {
		respondError(c, apperr.New(apperr.Internal, "cv uploads are not configured"))
		return
	}

	var req dtos.PresignCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "fileName, contentType and fileSize are required", err))
		return
	}

	signed, err := h.Presigner.PresignCV(c.Request.Context(), req.FileName, req.ContentType, req.FileSize)
	if err != nil {
		respondError(c, err)
		return
	}

	log.WithField("fileKey", signed.FileKey).Info("cv upload presigned")
	c.JSON(http.StatusOK, signed)
}
