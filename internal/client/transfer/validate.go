package transfer

import (
	"fmt"
	"slices"
	"strings"
)

// FileInfo is what the validator needs to know about a candidate upload.
type FileInfo struct {
	Name     string
	MimeType string
	Size     int64
}

// Validate checks f against the policy table and returns nil or a classified
// *Error. The first policy whose mime-type set contains f's type wins; order
// only matters if a type were listed in two policies. No side effects.
func Validate(policies []FilePolicy, f *FileInfo) error {
	if f == nil {
		return &Error{Reason: ReasonNoFileSelected, Message: "파일이 선택되지 않았습니다."}
	}

	var matched *FilePolicy
	for i := range policies {
		if slices.Contains(policies[i].MimeTypes, f.MimeType) {
			matched = &policies[i]
			break
		}
	}
	if matched == nil {
		return &Error{Reason: ReasonUnsupportedType, Message: "JPG 또는 PDF 파일만 업로드 가능합니다."}
	}

	if f.Size > matched.MaxSize {
		return &Error{
			Reason:  ReasonFileTooLarge,
			Message: fmt.Sprintf("%s 파일은 %s를 초과할 수 없습니다.", matched.DisplayName, FormatSize(matched.MaxSize)),
		}
	}

	if !slices.Contains(matched.Extensions, Ext(f.Name)) {
		return &Error{Reason: ReasonBadExtension, Message: "파일 확장자가 올바르지 않습니다."}
	}

	return nil
}

// Ext returns the lowercased extension of name including the dot, or "" when
// name contains no dot.
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i:])
}
