package transfer

import (
	"errors"

	"github.com/ktb-chat/chatclient/internal/httpx"
)

// Reason identifies why a transfer failed, independent of the user-facing
// text. Callers branch on the reason; the presenter shows the message.
type Reason string

const (
	ReasonNoFileSelected   Reason = "no_file_selected"
	ReasonUnsupportedType  Reason = "unsupported_type"
	ReasonFileTooLarge     Reason = "file_too_large"
	ReasonBadExtension     Reason = "bad_extension"
	ReasonRequestTimeout   Reason = "request_timeout"
	ReasonUnauthorized     Reason = "unauthorized"
	ReasonPayloadTooLarge  Reason = "payload_too_large"
	ReasonUnsupportedMedia Reason = "unsupported_media_type"
	ReasonServerError      Reason = "server_error"
	ReasonNotFound         Reason = "not_found"
	ReasonForbidden        Reason = "forbidden"
	ReasonUnknown          Reason = "unknown"
)

// Error is a classified transfer failure. It always crosses the package
// boundary as a returned value, never as a panic.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// ReasonOf extracts the classification from err. Unclassified errors report
// ReasonUnknown.
func ReasonOf(err error) Reason {
	var te *Error
	if errors.As(err, &te) {
		return te.Reason
	}
	return ReasonUnknown
}

// Context selects the fallback copy used when a failure has no more specific
// mapping; the classification table itself is shared between both directions.
type Context string

const (
	ContextUpload   Context = "upload"
	ContextDownload Context = "download"
)

func fallbackMessage(ctx Context) string {
	if ctx == ContextDownload {
		return "파일 다운로드에 실패했습니다."
	}
	return "파일 업로드에 실패했습니다."
}

func timeoutMessage(ctx Context) string {
	if ctx == ContextDownload {
		return "파일 다운로드 시간이 초과되었습니다."
	}
	return "파일 업로드 시간이 초과되었습니다."
}

// Classify maps a transport or HTTP failure onto the closed reason set.
// Already-classified errors pass through untouched.
func Classify(err error, ctx Context) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}

	if httpx.IsTimeout(err) {
		return &Error{Reason: ReasonRequestTimeout, Message: timeoutMessage(ctx)}
	}

	var se *httpx.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case 400:
			msg := se.Message
			if msg == "" {
				msg = "잘못된 요청입니다."
			}
			return &Error{Reason: ReasonUnknown, Message: msg}
		case 401:
			return &Error{Reason: ReasonUnauthorized, Message: "인증이 필요합니다."}
		case 403:
			return &Error{Reason: ReasonForbidden, Message: "파일에 접근할 권한이 없습니다."}
		case 404:
			return &Error{Reason: ReasonNotFound, Message: "파일을 찾을 수 없습니다."}
		case 413:
			return &Error{Reason: ReasonPayloadTooLarge, Message: "파일이 너무 큽니다."}
		case 415:
			return &Error{Reason: ReasonUnsupportedMedia, Message: "지원하지 않는 파일 형식입니다."}
		case 500:
			return &Error{Reason: ReasonServerError, Message: "서버 오류가 발생했습니다."}
		default:
			msg := se.Message
			if msg == "" {
				msg = fallbackMessage(ctx)
			}
			return &Error{Reason: ReasonUnknown, Message: msg}
		}
	}

	// pure network failure, no structured response
	msg := err.Error()
	if msg == "" {
		msg = "알 수 없는 오류가 발생했습니다."
	}
	return &Error{Reason: ReasonUnknown, Message: msg}
}
