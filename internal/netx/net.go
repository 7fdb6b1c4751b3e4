// Package netx holds small HTTP helpers shared by clients.
package netx

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"sort"
	"strings"
)

// MultipartFile is the file part of a multipart upload.
type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Body        io.Reader
}

// ContentTypeByName guesses a media type from the file extension, falling
// back to application/octet-stream.
func ContentTypeByName(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// NewMultipartRequest builds a request whose body streams the form fields
// followed by the file. The body is produced by a goroutine as the request
// is sent, so large files are never buffered in memory.
func NewMultipartRequest(ctx context.Context, method, url string, fields map[string]string, file MultipartFile) (*http.Request, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	req, err := http.NewRequestWithContext(ctx, method, url, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	go func() {
		pw.CloseWithError(writeMultipart(mw, keys, fields, file))
	}()

	return req, nil
}

func writeMultipart(mw *multipart.Writer, keys []string, fields map[string]string, file MultipartFile) error {
	for _, k := range keys {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return err
		}
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = ContentTypeByName(file.Filename)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return err
	}
	return mw.Close()
}
