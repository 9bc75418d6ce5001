package http_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/config"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// multipartSlack leaves room for multipart framing on top of the image payload.
const multipartSlack = 1 << 20

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.ScrubService
}

func NewServer(cfg *config.Config, service port.ScrubService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:         int(cfg.App.MaxUploadBytes) + multipartSlack,
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/upload", s.handleUpload)
	s.app.Get("/download/:id", s.handleDownload)
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

// Handler exposes the underlying fiber handler for in-process testing.
func (s *Server) Handler() *fiber.App {
	return s.app
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "ok",
		"max_upload_bytes":  s.cfg.App.MaxUploadBytes,
		"supported_formats": domain.SupportedExtensions(),
	})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data")
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid Content-Type")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing boundary in Content-Type")
	}

	// Use raw request body stream
	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	mr := multipart.NewReader(bodyStream, boundary)

	var fileName string
	var src io.Reader

	// Find the file part
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
		}

		if part.FileName() != "" {
			fileName = part.FileName()
			src = part
			break
		}
		_ = part.Close()
	}

	if src == nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'file' part")
	}

	receipt, err := s.service.Submit(c.Context(), fileName, src)
	if err != nil {
		return s.sendSubmitError(c, fileName, err)
	}

	return c.JSON(receipt)
}

func (s *Server) sendSubmitError(c *fiber.Ctx, fileName string, err error) error {
	var sanErr *port.SanitizationError

	switch {
	case errors.Is(err, port.ErrUnsupportedType):
		return s.sendJSONError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Unsupported file type, allowed: %s", strings.Join(domain.SupportedExtensions(), ", ")))
	case errors.Is(err, port.ErrPayloadTooLarge):
		return s.sendJSONError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", s.cfg.App.MaxUploadBytes))
	case errors.As(err, &sanErr):
		sdklogger.Warnw("Sanitization rejected upload", "file_name", fileName, "stage", sanErr.Stage, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusUnprocessableEntity, "File could not be processed as an image")
	case errors.Is(err, port.ErrStorageFull):
		sdklogger.Errorw("Upload failed, storage full", "file_name", fileName)
		return s.sendJSONError(c, fiber.StatusInsufficientStorage, "Storage capacity exhausted, try again later")
	default:
		sdklogger.Errorw("Upload failed", "file_name", fileName, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Upload failed")
	}
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	id := c.Params("id")

	// The response body is buffered until the handler returns, so status and
	// headers can still change after a failed retrieval.
	if err := s.service.Retrieve(c.Context(), id, c.Response().BodyWriter()); err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			return s.sendJSONError(c, fiber.StatusNotFound, "File not found or already downloaded")
		}
		sdklogger.Errorw("Download failed", "file_id", id, "error", err.Error())
		c.Response().ResetBody()
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Download failed")
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sanitized_%s.%s\"", id, domain.OutputExtension))
	c.Set("Content-Type", "image/jpeg")
	return nil
}
