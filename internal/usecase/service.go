package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resumetuner/internal/domain"
	"resumetuner/internal/render"
)

// Service is the application surface shared by the HTTP adapter and the
// CLI. Optional collaborators may be nil; the operations that need them
// then fail with an input validation error.
type Service struct {
	proc     *Processor
	files    FileStore
	jobs     JobSource
	pdf      PDFConverter
	renderer Renderer
	log      *logrus.Entry
}

func NewService(proc *Processor, files FileStore, jobs JobSource, pdf PDFConverter, renderer Renderer, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.WithField("component", "service")
	}
	return &Service{proc: proc, files: files, jobs: jobs, pdf: pdf, renderer: renderer, log: log}
}

// DecodeText checks that an uploaded file is a .txt file holding UTF-8 and
// returns its content.
func DecodeText(field, name string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(name), ".txt") {
		return "", domain.Invalidf("expected a .txt file for '%s'", field)
	}
	if !utf8.Valid(data) {
		return "", domain.Invalidf("'%s' is not valid UTF-8 text", field)
	}
	return string(data), nil
}

// Upload validates and stores an uploaded resume.
func (s *Service) Upload(ctx context.Context, name string, data []byte) (domain.StoredFile, error) {
	content, err := DecodeText("file", name, data)
	if err != nil {
		return domain.StoredFile{}, err
	}
	if s.files == nil {
		return domain.StoredFile{}, domain.Invalid("file uploads are not enabled")
	}
	f, err := s.files.Put(ctx, filepath.Base(name), content)
	if err != nil {
		return domain.StoredFile{}, err
	}
	s.log.WithFields(logrus.Fields{"file_id": f.ID, "bytes": len(data)}).Info("file stored")
	return f, nil
}

// File returns a stored upload by its textual id. An id that is not a UUID
// cannot name an upload and is reported as not found.
func (s *Service) File(ctx context.Context, id string) (domain.StoredFile, error) {
	uid, err := uuid.Parse(id)
	if err != nil || s.files == nil {
		return domain.StoredFile{}, domain.Fail(domain.ErrNotFound, "file not found", nil)
	}
	return s.files.Get(ctx, uid)
}

// Tailor resolves the request's resume and job text, runs the pipeline and,
// when asked, the formatting stage.
func (s *Service) Tailor(ctx context.Context, req TailorRequest) (*domain.Run, error) {
	resumeText, err := s.resolveResume(ctx, req)
	if err != nil {
		return nil, err
	}
	jobText, err := s.resolveJob(ctx, req)
	if err != nil {
		return nil, err
	}

	run, err := s.proc.Run(ctx, resumeText, jobText)
	if err != nil {
		return nil, err
	}
	if req.Format {
		if _, err := s.proc.Format(ctx, run, req.Template); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func (s *Service) resolveResume(ctx context.Context, req TailorRequest) (string, error) {
	if strings.TrimSpace(req.ResumeText) != "" {
		return req.ResumeText, nil
	}
	if req.ResumeID == "" {
		return "", domain.Invalid("a resume file or resume_id is required")
	}
	f, err := s.File(ctx, req.ResumeID)
	if err != nil {
		return "", err
	}
	return f.Content, nil
}

func (s *Service) resolveJob(ctx context.Context, req TailorRequest) (string, error) {
	if strings.TrimSpace(req.JobText) != "" {
		return req.JobText, nil
	}
	if strings.TrimSpace(req.JobURL) == "" {
		return "", domain.Invalid("provide either a job file or a job_url")
	}
	if s.jobs == nil {
		return "", domain.Invalid("job_url is not supported by this server")
	}
	text, err := s.jobs.Description(ctx, strings.TrimSpace(req.JobURL))
	if err != nil {
		s.log.WithError(err).WithField("job_url", req.JobURL).Warn("job description extraction failed")
		return "", domain.Fail(domain.ErrUpstreamExtraction, "could not extract a job description from job_url", err)
	}
	return text, nil
}

// ConvertPDF turns an uploaded PDF into Markdown. The file is accepted when
// either its name or its content type says PDF.
func (s *Service) ConvertPDF(name, contentType string, data []byte) (string, error) {
	isPDF := strings.EqualFold(filepath.Ext(name), ".pdf") ||
		strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
	if !isPDF {
		return "", domain.Invalid("only PDF files are supported")
	}
	if len(data) == 0 {
		return "", domain.Invalid("uploaded file is empty")
	}
	if s.pdf == nil {
		return "", domain.Invalid("pdf conversion is not enabled")
	}
	return s.pdf.Convert(data)
}

// RenderPDF prints an enforced resume to PDF.
func (s *Service) RenderPDF(ctx context.Context, text string) ([]byte, error) {
	if s.renderer == nil {
		return nil, domain.Invalid("pdf rendering is not enabled")
	}
	html, err := render.HTML(text)
	if err != nil {
		return nil, domain.Fail(domain.ErrConversion, "failed to render resume html", err)
	}
	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, domain.Fail(domain.ErrConversion, "failed to print resume to pdf", err)
	}
	return pdf, nil
}
