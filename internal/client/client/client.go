package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/netx"
)

// HTTPClient talks to the contact manager REST API. It is not safe for
// concurrent use while SetToken is being called.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", credentials{Email: email, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	if err := c.doJSON(ctx, http.MethodGet, "/contact", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetContact(ctx context.Context, id string) (*Contact, error) {
	var out Contact
	if err := c.doJSON(ctx, http.MethodGet, "/contact/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateContact(ctx context.Context, in ContactInput) (*Contact, error) {
	var out Contact
	if err := c.doJSON(ctx, http.MethodPost, "/contact/create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateContact(ctx context.Context, id string, patch ContactPatch) (*Contact, error) {
	var out Contact
	if err := c.doJSON(ctx, http.MethodPatch, "/contact/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteContact(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/contact/"+url.PathEscape(id), nil, nil)
}

// UploadFile streams r as the image of the contact.
func (c *HTTPClient) UploadFile(ctx context.Context, contactID, filename string, r io.Reader) (*FileInfo, error) {
	req, err := netx.NewMultipartRequest(ctx, http.MethodPost, c.baseURL+"/file/upload",
		map[string]string{"contactId": contactID},
		netx.MultipartFile{Field: "file", Filename: filename, Body: r},
	)
	if err != nil {
		return nil, err
	}

	var out FileInfo
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetFile(ctx context.Context, contactID string) (*FileInfo, error) {
	var out FileInfo
	if err := c.doJSON(ctx, http.MethodGet, "/file/"+url.PathEscape(contactID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, contactID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/file/"+url.PathEscape(contactID), nil, nil)
}

// FileURL returns the public address of the stored image.
func (c *HTTPClient) FileURL(info *FileInfo) string {
	return c.baseURL + "/uploads/" + info.URL
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	}
	return apiErr
}
