package dtos

// ApplyRequest is the body of POST /jobs/:id/apply.
type ApplyRequest struct {
	CVFileKey   string `json:"cvFileKey" binding:"required"`
	CoverLetter string `json:"coverLetter"`
	AllowSearch bool   `json:"allowSearch"`
}

// PresignCVRequest is the body of POST /uploads/cv.
type PresignCVRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}
