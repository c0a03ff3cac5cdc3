package http

import (
	"io"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"resumetuner/internal/domain"
	"resumetuner/internal/model"
	"resumetuner/internal/usecase"
)

const (
	mimeJSON  = "application/json"
	mimePlain = "text/plain"
	mimeLaTeX = "application/x-latex"
	mimePDF   = "application/pdf"
)

type Handler struct {
	svc *usecase.Service
}

func NewHandler(svc *usecase.Service) *Handler {
	return &Handler{svc: svc}
}

// Upload stores a .txt resume and returns its id.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.Invalid("multipart field 'file' is required")
	}
	data, err := readUpload(fh)
	if err != nil {
		return err
	}
	f, err := h.svc.Upload(c.UserContext(), fh.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(model.UploadResponse{Message: "File uploaded successfully.", FileID: f.ID.String()})
}

// File returns the content of a stored upload.
func (h *Handler) File(c *fiber.Ctx) error {
	f, err := h.svc.File(c.UserContext(), c.Params("file_id"))
	if err != nil {
		return err
	}
	return c.JSON(model.FileResponse{FileID: f.ID.String(), Content: f.Content})
}

// Analyze tailors a multipart resume to a multipart job description or a
// job posting URL.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	req := usecase.TailorRequest{
		ResumeID: strings.TrimSpace(c.FormValue("resume_id")),
		JobURL:   strings.TrimSpace(c.FormValue("job_url")),
		Format:   c.QueryBool("latex"),
	}

	if fh, err := c.FormFile("resume"); err == nil {
		text, err := readText(fh, "resume")
		if err != nil {
			return err
		}
		req.ResumeText = text
	} else if req.ResumeID == "" {
		return domain.Invalid("multipart field 'resume' is required")
	}

	if fh, err := c.FormFile("job"); err == nil {
		text, err := readText(fh, "job")
		if err != nil {
			return err
		}
		req.JobText = text
	} else if req.JobURL == "" {
		return domain.Invalid("provide either a 'job' file or a 'job_url'")
	}

	if fh, err := c.FormFile("latex_format"); err == nil {
		data, err := readUpload(fh)
		if err != nil || !utf8.Valid(data) {
			return domain.Invalid("could not read LaTeX format file")
		}
		req.Template = string(data)
	}

	run, err := h.svc.Tailor(c.UserContext(), req)
	if err != nil {
		return err
	}

	switch {
	case req.Format:
		c.Attachment("optimized_resume.tex")
		c.Set(fiber.HeaderContentType, mimeLaTeX)
		return c.SendString(run.Final())
	case c.QueryBool("pdf"):
		pdf, err := h.svc.RenderPDF(c.UserContext(), run.Get(domain.FieldOptimizedResume))
		if err != nil {
			return err
		}
		c.Attachment("optimized_resume.pdf")
		c.Set(fiber.HeaderContentType, mimePDF)
		return c.Send(pdf)
	}
	return respond(c, run.Final())
}

// Optimize tailors a JSON {resume, jobDescription} request. It has no LaTeX
// output; use Analyze for that.
func (h *Handler) Optimize(c *fiber.Ctx) error {
	body, err := model.ParseOptimizeRequest(c.Body())
	if err != nil {
		return err
	}
	run, err := h.svc.Tailor(c.UserContext(), usecase.TailorRequest{
		ResumeText: body.Resume,
		JobText:    body.JobDescription,
	})
	if err != nil {
		return err
	}
	return respond(c, run.Final())
}

// ConvertPDF returns the Markdown text of an uploaded PDF.
func (h *Handler) ConvertPDF(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.Invalid("multipart field 'file' is required")
	}
	data, err := readUpload(fh)
	if err != nil {
		return err
	}
	md, err := h.svc.ConvertPDF(fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return err
	}
	return c.JSON(model.MarkdownResponse{Markdown: md})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(model.HealthResponse{Status: "ok"})
}

// respond writes the resume as text/plain when the client asks for it with
// ?plain=true or an Accept header preferring text, and as JSON otherwise.
func respond(c *fiber.Ctx, text string) error {
	if c.QueryBool("plain") || c.Accepts(mimeJSON, mimePlain) == mimePlain {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(text)
	}
	return c.JSON(model.OptimizedResume{OptimizedResume: text})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	return data, nil
}

// readText reads a required, non-empty .txt upload.
func readText(fh *multipart.FileHeader, field string) (string, error) {
	data, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	text, err := usecase.DecodeText(field, fh.Filename, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.Invalidf("'%s' is empty", field)
	}
	return text, nil
}
