package uploads

import (
	"regexp"
	"strings"
	"testing"

	"github.com/cloudhire/cloudhire-backend/internal/apperr"
)

func TestValidateCV(t *testing.T) {
	cases := []struct {
		name        string
		fileName    string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"pdf ok", "cv.pdf", "application/pdf", 1024, false},
		{"doc ok", "cv.doc", "application/msword", 1024, false},
		{"docx ok", "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, false},
		{"at size limit", "cv.pdf", "application/pdf", MaxCVSize, false},
		{"over size limit", "cv.pdf", "application/pdf", MaxCVSize + 1, true},
		{"wrong type", "cv.png", "image/png", 1024, true},
		{"missing name", "", "application/pdf", 1024, true},
		{"zero size", "cv.pdf", "application/pdf", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCV(tc.fileName, tc.contentType, tc.size)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateCV(%q,%q,%d) err = %v, wantErr %v", tc.fileName, tc.contentType, tc.size, err, tc.wantErr)
			}
			if err != nil && apperr.KindOf(err) != apperr.Validation {
				t.Errorf("error kind = %v, want Validation", apperr.KindOf(err))
			}
		})
	}
}

var cvKeyPattern = regexp.MustCompile(`^cvs/\d+_[0-9a-z]{7}_`)

func TestBuildCVKey(t *testing.T) {
	key := BuildCVKey("my cv (final).pdf")
	if !cvKeyPattern.MatchString(key) {
		t.Errorf("key = %q, want cvs/{millis}_{rand7}_ prefix", key)
	}
	if strings.ContainsAny(key[len("cvs/"):], " ()") {
		t.Errorf("key %q contains unsanitized characters", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key %q lost the file extension", key)
	}
}
