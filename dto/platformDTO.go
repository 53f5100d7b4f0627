package dto

type TestConnectionRequest struct {
	Platform string            `json:"platform" binding:"required"`
	URL      string            `json:"url" binding:"required"`
	Config   map[string]string `json:"config"`
}

type PreviewRequest struct {
	Platform string            `json:"platform" binding:"required"`
	Content  string            `json:"content" binding:"required"`
	Config   map[string]string `json:"config"`
}
