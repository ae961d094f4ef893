package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ktb-chat/chatclient/internal/client/api"
	"github.com/ktb-chat/chatclient/internal/client/models"
	"github.com/ktb-chat/chatclient/internal/httpx"
	"github.com/ktb-chat/chatclient/internal/logging"
)

// DefaultTimeout bounds a single storage PUT or GET.
const DefaultTimeout = 30 * time.Second

// File is a candidate upload: descriptive info plus the content itself.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

func (f *File) info() *FileInfo {
	if f == nil {
		return nil
	}
	return &FileInfo{Name: f.Name, MimeType: f.MimeType, Size: int64(len(f.Data))}
}

// Config carries the explicit runtime settings of a Client, so tests can
// swap the storage endpoint and policy table freely.
type Config struct {
	StorageBaseURL string
	DownloadDir    string
	Timeout        time.Duration // zero means DefaultTimeout
	Policies       []FilePolicy  // nil means DefaultPolicies
}

// Client orchestrates presigned-URL negotiation, the direct storage PUT with
// progress reporting, and download-with-save. Every failure comes back as a
// classified *Error value; nothing is retried automatically.
type Client struct {
	api         api.API
	http        *http.Client
	storageBase string
	downloadDir string
	timeout     time.Duration
	policies    []FilePolicy
	log         logging.Logger
}

func NewClient(backend api.API, cfg Config, log logging.Logger) *Client {
	c := &Client{
		api:         backend,
		http:        &http.Client{},
		storageBase: strings.TrimRight(cfg.StorageBaseURL, "/"),
		downloadDir: cfg.DownloadDir,
		timeout:     cfg.Timeout,
		policies:    cfg.Policies,
		log:         log,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.policies == nil {
		c.policies = DefaultPolicies()
	}
	return c
}

// FileURL returns the canonical retrieval URL for a stored object.
func (c *Client) FileURL(key string) string {
	return c.storageBase + "/" + key
}

// Validate runs the client's policy table against f without touching the
// network.
func (c *Client) Validate(f *File) error {
	return Validate(c.policies, f.info())
}

// Upload validates f, negotiates a presigned PUT with the backend, streams
// the bytes directly to storage, and returns the resulting metadata.
//
// onProgress, when non-nil, receives whole percentages that never decrease
// across one call and is not invoked after Upload returns. There is no
// guaranteed final 100% callback; completion is signaled by the return.
func (c *Client) Upload(ctx context.Context, f *File, onProgress func(percent int)) (*models.FileMetadata, error) {
	if err := Validate(c.policies, f.info()); err != nil {
		return nil, err
	}

	key := uuid.NewString() + "-" + f.Name

	grant, err := c.api.NegotiateUpload(ctx, &api.UploadRequest{
		FileKey:  key,
		FileName: f.Name,
		FileSize: int64(len(f.Data)),
		MimeType: f.MimeType,
	})
	if err != nil {
		var rej *api.RejectedError
		if errors.As(err, &rej) {
			msg := rej.Message
			if msg == "" {
				msg = "업로드 URL 생성 실패"
			}
			return nil, &Error{Reason: ReasonServerError, Message: msg}
		}
		return nil, Classify(err, ContextUpload)
	}

	putCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &progressReader{
		r:      bytes.NewReader(f.Data),
		total:  int64(len(f.Data)),
		report: onProgress,
	}
	req, err := http.NewRequestWithContext(putCtx, http.MethodPut, grant.PresignedURL, body)
	if err != nil {
		return nil, Classify(err, ContextUpload)
	}
	req.ContentLength = int64(len(f.Data))
	req.Header.Set("Content-Type", f.MimeType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Classify(err, ContextUpload)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, Classify(httpx.ErrorFromResponse(resp), ContextUpload)
	}

	md := &models.FileMetadata{
		Key:          key,
		OriginalName: f.Name,
		Mimetype:     f.MimeType,
		Size:         int64(len(f.Data)),
		URL:          c.FileURL(key),
	}
	c.log.Info(ctx, "file uploaded", "key", key, "size", md.Size, "mimetype", md.Mimetype)
	return md, nil
}

// progressReader counts the bytes the HTTP transport has consumed and
// reports the running whole percentage. Percentages are monotonic because
// the read offset only grows.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.report != nil && p.total > 0 {
			pct := int(math.Round(float64(p.read) * 100 / float64(p.total)))
			if pct > 100 {
				pct = 100
			}
			p.report(pct)
		}
	}
	return n, err
}

// DetectMimeType guesses the mime type of a file about to be attached, first
// by extension, then by sniffing the content.
func DetectMimeType(name string, data []byte) string {
	if t := mime.TypeByExtension(Ext(name)); t != "" {
		// strip any charset parameter
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return http.DetectContentType(data)
}
