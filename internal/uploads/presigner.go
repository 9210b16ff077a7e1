// Package uploads issues presigned S3 PUT URLs for CV files so the browser
// uploads directly to the bucket and only the object key travels through the
// apply endpoint.
package uploads

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cloudhire/cloudhire-backend/internal/apperr"
	"github.com/cloudhire/cloudhire-backend/internal/ident"
)

// MaxCVSize caps CV uploads at 5 MB, matching what the web client enforces.
const MaxCVSize = 5 * 1024 * 1024

const presignTTL = 15 * time.Minute

var allowedCVTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// PresignedUpload is what the client needs to PUT the file itself.
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// Presigner signs CV upload URLs against one bucket.
type Presigner struct {
	presign *s3.PresignClient
	bucket  string
}

func NewPresigner(client *s3.Client, bucket string) *Presigner {
	return &Presigner{presign: s3.NewPresignClient(client), bucket: bucket}
}

// PresignCV validates the announced file and returns a signed PUT URL for it.
// The generated key is cvs/{millis}_{rand7}_{sanitized-filename}.
func (p *Presigner) PresignCV(ctx context.Context, fileName, contentType string, fileSize int64) (*PresignedUpload, error) {
	if err := ValidateCV(fileName, contentType, fileSize); err != nil {
		return nil, err
	}

	key := BuildCVKey(fileName)
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to presign upload", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileKey:   key,
		ExpiresIn: int(presignTTL.Seconds()),
	}, nil
}

// ValidateCV applies the same limits the web client shows the user: 5 MB max,
// PDF or Word only.
func ValidateCV(fileName, contentType string, fileSize int64) error {
	if fileName == "" {
		return apperr.New(apperr.Validation, "file name is required")
	}
	if fileSize <= 0 {
		return apperr.New(apperr.Validation, "file size is required")
	}
	if fileSize > MaxCVSize {
		return apperr.Newf(apperr.Validation, "file too large, maximum is %d MB", MaxCVSize/(1024*1024))
	}
	if !allowedCVTypes[contentType] {
		return apperr.New(apperr.Validation, "only PDF or Word files are accepted (.pdf, .doc, .docx)")
	}
	return nil
}

// BuildCVKey generates the object key for an uploaded CV.
func BuildCVKey(fileName string) string {
	safe := unsafeKeyChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("cvs/%s_%s", ident.NewUploadToken(), safe)
}
