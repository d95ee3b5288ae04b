package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"chat-relay/internal/services"
)

// MaxUploadBytes bounds the size of an uploaded document
const MaxUploadBytes = 32 << 20

// DocumentHandler summarizes uploaded documents
type DocumentHandler struct {
	responder
	summary *services.SummaryService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(summary *services.SummaryService, logger *log.Logger) *DocumentHandler {
	return &DocumentHandler{
		responder: responder{logger: logger},
		summary:   summary,
	}
}

// UploadPDF godoc
// @Summary Summarize a PDF
// @Description Extracts the text of an uploaded PDF, truncates it and returns a model-generated summary with keywords
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} models.SummaryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /upload-pdf [post]
func (h *DocumentHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("Upload request from %s", r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		h.logger.Printf("Failed to parse form: %v", err)
		h.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Printf("No file uploaded: %v", err)
		h.sendError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !services.IsPDF(contentType) {
		h.sendError(w, http.StatusBadRequest, services.UnsupportedDocumentMessage)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Printf("Failed to read %s: %v", header.Filename, err)
		h.sendError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	resp, err := h.summary.Summarize(r.Context(), contentType, data)
	if err != nil {
		var invalid *services.InvalidInputError
		if errors.As(err, &invalid) {
			h.sendError(w, http.StatusBadRequest, invalid.Message)
			return
		}
		h.logger.Printf("Summary of %s failed: %v", header.Filename, err)
		h.sendError(w, http.StatusInternalServerError, "Failed to process PDF.")
		return
	}

	h.logger.Printf("Summarized %s (%d bytes, %d keywords)", header.Filename, len(data), len(resp.Keywords))
	h.sendJSON(w, http.StatusOK, resp)
}
