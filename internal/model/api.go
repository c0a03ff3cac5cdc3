package model

// Request and response bodies of the HTTP API.

type OptimizeRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

type OptimizedResume struct {
	OptimizedResume string `json:"optimized_resume"`
}

type UploadResponse struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

type FileResponse struct {
	FileID  string `json:"file_id"`
	Content string `json:"content"`
}

type MarkdownResponse struct {
	Markdown string `json:"markdown"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
