package models

import "io"

// FileUpload is an image received from the admin upload form
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
