package transcripts

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"transcript-backend/internal/analyses"
	"transcript-backend/internal/extract"
	"transcript-backend/internal/report"
	"transcript-backend/internal/services/health"
	"transcript-backend/internal/shared/server/middleware"
	"transcript-backend/internal/shared/server/respond"
	"transcript-backend/internal/shared/telemetry"
)

const (
	msgNoFile        = "No file uploaded"
	msgProcessing    = "Processing failed"
	msgInvalidOutput = "AI returned invalid structured output"

	uploadField = "file"
)

// Handler wires the browser-facing and JSON routes to the service.
type Handler struct {
	Svc    *Service
	Health *health.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, healthSvc *health.Service) *Handler {
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	return &Handler{Svc: svc, Health: healthSvc}
}

// RegisterRoutes attaches the upload form routes to the engine root.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.liveness)
	r.GET("/test", h.uploadForm)
	r.POST("/upload", h.upload)
}

// RegisterAPIRoutes attaches the JSON routes to the API group.
func (h *Handler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.POST("/analyses", h.analyzeJSON)
}

func (h *Handler) liveness(c *gin.Context) {
	respond.Text(c, http.StatusOK, h.Health.Liveness())
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, h.Health.Status())
}

func (h *Handler) uploadForm(c *gin.Context) {
	respond.HTML(c, http.StatusOK, report.UploadForm())
}

func (h *Handler) upload(c *gin.Context) {
	doc, err := readUpload(c)
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			respond.PlainError(c, http.StatusBadRequest, analyses.ErrorCodeValidation, msgNoFile)
			return
		}
		logFailure(c, "transcript.read_failed", err)
		respond.PlainError(c, http.StatusInternalServerError, analyses.ErrorCodeInternal, msgProcessing)
		return
	}

	ctx := withRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Process(ctx, doc)
	if err != nil {
		status, code, msg := classify(err)
		logFailure(c, "transcript.analysis_failed", err)
		respond.PlainError(c, status, code, msg)
		return
	}

	body, err := report.RenderBytes(result)
	if err != nil {
		logFailure(c, "transcript.render_failed", err)
		respond.PlainError(c, http.StatusInternalServerError, analyses.ErrorCodeInternal, msgProcessing)
		return
	}
	respond.HTML(c, http.StatusOK, body)
}

func (h *Handler) analyzeJSON(c *gin.Context) {
	doc, err := readUpload(c)
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			respond.Error(c, http.StatusBadRequest, analyses.ErrorCodeValidation, msgNoFile, nil)
			return
		}
		logFailure(c, "transcript.read_failed", err)
		respond.Error(c, http.StatusInternalServerError, analyses.ErrorCodeInternal, msgProcessing, nil)
		return
	}

	ctx := withRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Process(ctx, doc)
	if err != nil {
		status, code, msg := classify(err)
		logFailure(c, "transcript.analysis_failed", err)
		respond.Error(c, status, code, msg, nil)
		return
	}
	respond.OK(c, result)
}

// readUpload streams the first "file" part into memory. The body is never
// handed to ParseMultipartForm, which spools large parts to temp files.
func readUpload(c *gin.Context) (UploadedDocument, error) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		return UploadedDocument{}, fmt.Errorf("%w: %v", ErrNoFile, err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return UploadedDocument{}, ErrNoFile
		}
		if err != nil {
			// Malformed bodies carry no usable file either.
			return UploadedDocument{}, fmt.Errorf("%w: %v", ErrNoFile, err)
		}
		if part.FormName() != uploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return UploadedDocument{}, fmt.Errorf("read upload: %w", err)
		}

		doc := UploadedDocument{
			Data:     data,
			FileName: part.FileName(),
			MimeType: part.Header.Get("Content-Type"),
		}
		c.Set(middleware.DocumentNameKey, doc.DisplayName())
		c.Set(middleware.DocumentSizeKey, int64(len(data)))
		c.Set(middleware.DocumentSHA256Key, doc.SHA256())
		return doc, nil
	}
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, analyses.ErrSchemaParse):
		return http.StatusInternalServerError, analyses.ErrorCodeLLMSchemaMismatch, msgInvalidOutput
	case errors.Is(err, analyses.ErrExternalService):
		return http.StatusInternalServerError, analyses.ErrorCodeLLMFailed, msgProcessing
	case errors.Is(err, extract.ErrExtraction):
		return http.StatusInternalServerError, analyses.ErrorCodeExtraction, msgProcessing
	default:
		return http.StatusInternalServerError, analyses.ErrorCodeInternal, msgProcessing
	}
}

func logFailure(c *gin.Context, msg string, err error) {
	telemetry.Error(msg, map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"path":       c.Request.URL.Path,
		"error":      err.Error(),
	})
}
