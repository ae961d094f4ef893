// Package transfer moves file bytes between the user's machine and object
// storage using backend-issued presigned URLs, and classifies every failure
// into a closed set of reasons with user-facing Korean copy.
package transfer

// FilePolicy describes one allowed file category. The policy table is static:
// it is built at startup and never mutated.
type FilePolicy struct {
	Category    string
	Extensions  []string // lowercase, leading dot included
	MimeTypes   []string
	MaxSize     int64
	DisplayName string // label used in size-limit messages
}

// DefaultPolicies mirrors the upload rules of the chat backend: images up to
// 10 MiB, PDF documents up to 20 MiB.
func DefaultPolicies() []FilePolicy {
	return []FilePolicy{
		{
			Category:    "image",
			Extensions:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
			MimeTypes:   []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
			MaxSize:     10 * 1024 * 1024,
			DisplayName: "이미지",
		},
		{
			Category:    "document",
			Extensions:  []string{".pdf"},
			MimeTypes:   []string{"application/pdf"},
			MaxSize:     20 * 1024 * 1024,
			DisplayName: "PDF 문서",
		},
	}
}
