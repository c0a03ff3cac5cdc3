package usecase

import (
	"context"

	"github.com/google/uuid"

	"resumetuner/internal/domain"
)

// FileStore keeps uploaded resume text for later reference by id.
type FileStore interface {
	Put(ctx context.Context, name, content string) (domain.StoredFile, error)
	Get(ctx context.Context, id uuid.UUID) (domain.StoredFile, error)
}

// JobSource turns a job posting URL into description text.
type JobSource interface {
	Description(ctx context.Context, url string) (string, error)
}

// PDFConverter extracts Markdown from a PDF document.
type PDFConverter interface {
	Convert(data []byte) (string, error)
}

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// TailorRequest carries one tailoring request. Exactly one of ResumeText
// and ResumeID, and one of JobText and JobURL, is expected.
type TailorRequest struct {
	ResumeText string
	ResumeID   string
	JobText    string
	JobURL     string
	// Format requests the formatting stage with Template as the example.
	Format   bool
	Template string
}
