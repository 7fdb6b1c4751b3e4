package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/dmitrijs2005/contactbook/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testEnv struct {
	srv   *httptest.Server
	store *storage.LocalStore
	codec *auth.TokenCodec
}

func newTestServer(t *testing.T, opts Options) (*Server, *storage.LocalStore, *auth.TokenCodec) {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	rm := repomanager.NewInMemoryRepositoryManager()
	codec := auth.NewTokenCodec([]byte(testSecret), time.Hour)
	l := logging.Discard()

	us := services.NewUserService(nil, rm, auth.NewBcryptHasher(bcrypt.MinCost), codec, l)
	cs := services.NewContactService(nil, rm, store, l)
	fs := services.NewFileService(nil, rm, store, l)

	return NewServer(opts, l, us, cs, fs, codec), store, codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, store, codec := newTestServer(t, Options{MaxUploadSize: 1 << 16})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: store, codec: codec}
}

// do sends a JSON request and returns the status and raw body.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			buf, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(buf)
		}
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func (e *testEnv) upload(t *testing.T, token, contactID, filename, contentType string, data []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("contactId", contactID))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/file/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return e.send(t, req)
}

// signup registers and logs in, returning a session token.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "s3cret-pass"}

	status, body := e.do(t, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = e.do(t, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status, string(body))

	var out loginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (e *testEnv) createContact(t *testing.T, token, name string) map[string]any {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/contact/create", token, map[string]string{
		"name": name, "phone": "+1 555 0100", "address": "1 Main st",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[map[string]any](t, body)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake image")
