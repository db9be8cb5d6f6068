package dto

// UploadResponse describes a stored file.
type UploadResponse struct {
	FileURL     string `json:"file_url"`
	FilePath    string `json:"file_path"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
