package transfer

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ktb-chat/chatclient/internal/httpx"
)

// Download fetches the stored object for key and saves it into the client's
// download directory under filename, returning the saved path.
//
// The retrieval URL gets a cache-busting timestamp query so no stale
// intermediary copy is served, and no auth header is attached: read access is
// governed by the bucket, not the session. The bytes land in a temporary file
// first and are renamed into place only on success, so a failed download
// never leaves a partial file behind.
func (c *Client) Download(ctx context.Context, key, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.FileURL(key) + "?ts=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", Classify(err, ContextDownload)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", Classify(err, ContextDownload)
	}
	defer resp.Body.Close()

	// 404/403 are special-cased before generic classification; the body is
	// irrelevant for these.
	switch resp.StatusCode {
	case http.StatusNotFound:
		return "", &Error{Reason: ReasonNotFound, Message: "파일을 찾을 수 없습니다."}
	case http.StatusForbidden:
		return "", &Error{Reason: ReasonForbidden, Message: "파일에 접근할 권한이 없습니다."}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", Classify(httpx.ErrorFromResponse(resp), ContextDownload)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := os.MkdirAll(c.downloadDir, 0o770); err != nil {
		return "", Classify(err, ContextDownload)
	}

	tmp, err := os.CreateTemp(c.downloadDir, ".download-*")
	if err != nil {
		return "", Classify(err, ContextDownload)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", Classify(err, ContextDownload)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", Classify(err, ContextDownload)
	}

	dst := filepath.Join(c.downloadDir, filepath.Base(filename))
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", Classify(err, ContextDownload)
	}

	c.log.Info(ctx, "file downloaded", "key", key, "path", dst, "contentType", contentType)
	return dst, nil
}
