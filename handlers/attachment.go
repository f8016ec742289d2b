package handlers

import (
	"io"
	"net/http"

	"voyago/services/storage"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAttachmentBytes caps uploaded chat images.
const maxAttachmentBytes = 8 << 20

// AttachmentHandler uploads chat image attachments and returns their URL.
type AttachmentHandler struct {
	Store storage.AttachmentStore
}

func NewAttachmentHandler(store storage.AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{Store: store}
}

func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	logger := utils.GetLogger()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing file upload", err.Error())
		return
	}
	defer file.Close()

	if header.Size > maxAttachmentBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "Attachment too large", "")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read upload", "")
		return
	}

	url, err := h.Store.Upload(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("attachment: upload failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not store attachment", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
