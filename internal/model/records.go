package model

import "time"

// DatasetRecord describes one uploaded training dataset. Records are
// immutable from the client's perspective once uploaded.
type DatasetRecord struct {
	DatasetID   string `json:"dataset_id"`
	Filename    string `json:"filename"`
	NumRows     int    `json:"num_rows"`
	UploadedAt  string `json:"uploaded_at"`
	DoneBy      string `json:"done_by"`
	DownloadURL string `json:"download_url"`
}

// UploadedTime parses the upload timestamp; zero time when unparseable.
func (d DatasetRecord) UploadedTime() time.Time {
	return ParseTimestamp(d.UploadedAt)
}

// ModelStatusCurrent marks the single deployed model per variant.
const ModelStatusCurrent = "Current"

// ModelRecord describes one trained model held by the service.
type ModelRecord struct {
	ModelID   string `json:"model_id"`
	BlobName  string `json:"model_blob_name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	DoneBy    string `json:"done_by"`
	ModelType string `json:"model_type"`
}

// IsCurrent reports whether this record is the deployed model for its
// variant.
func (m ModelRecord) IsCurrent() bool {
	return m.Status == ModelStatusCurrent
}

// CreatedTime parses the training timestamp; zero time when unparseable.
func (m ModelRecord) CreatedTime() time.Time {
	return ParseTimestamp(m.CreatedAt)
}

// User identifies the authenticated operator.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
