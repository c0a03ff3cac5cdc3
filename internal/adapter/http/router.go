package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"resumetuner/internal/domain"
	"resumetuner/internal/model"
)

type Options struct {
	AllowedOrigins []string
	BodyLimit      int
	Log            *logrus.Entry
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler, opts Options) *fiber.App {
	if opts.Log == nil {
		opts.Log = logrus.WithField("component", "http")
	}
	app := fiber.New(fiber.Config{
		AppName:               "resumetuner",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Log),
	})

	origins := strings.Join(opts.AllowedOrigins, ",")
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "" && !strings.Contains(origins, "*"),
	}))
	app.Use(requestLogger(opts.Log))

	app.Get("/healthz", h.Health)
	app.Post("/upload/", h.Upload)
	app.Get("/file/:file_id", h.File)
	app.Post("/analyze/", h.Analyze)
	app.Post("/optimize", h.Optimize)
	app.Post("/convert/pdf-to-md", h.ConvertPDF)
	return app
}

// statusOf maps a failure kind to its HTTP status.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrInputValidation:
		return fiber.StatusBadRequest
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrNoText:
		return fiber.StatusUnprocessableEntity
	case domain.ErrUpstreamExtraction:
		return fiber.StatusBadGateway
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func errorHandler(log *logrus.Entry) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(err)
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("request_id", c.Locals("requestid")).Error("request failed")
		}
		return c.Status(status).JSON(model.ErrorResponse{Detail: err.Error()})
	}
}

// requestLogger logs one line per request. Errors are rendered here so the
// logged status is the one sent.
func requestLogger(log *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    time.Since(start).String(),
			"request_id": c.Locals("requestid"),
		}).Info("request")
		return nil
	}
}
