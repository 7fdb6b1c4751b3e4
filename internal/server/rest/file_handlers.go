package rest

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/gorilla/mux"
)

const fileNotFound = "File not found"

type fileResponse struct {
	ContactID string `json:"contactId"`
	URL       string `json:"url"`
}

func newFileResponse(f *models.File) fileResponse {
	return fileResponse{ContactID: f.ContactID, URL: f.StoragePath}
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)
	if err := r.ParseMultipartForm(s.opts.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "File is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	contactID, ok := parseID(r.FormValue("contactId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	f, err := s.files.Attach(r.Context(), id.UserID, contactID, services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "File for this contact already exists")
			return
		}
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newFileResponse(f))
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	contactID, ok := parseID(mux.Vars(r)["contactId"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	f, err := s.files.Get(r.Context(), id.UserID, contactID)
	if err != nil {
		s.writeServiceError(w, r, err, fileNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newFileResponse(f))
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	contactID, ok := parseID(mux.Vars(r)["contactId"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	removed, err := s.files.Remove(r.Context(), id.UserID, contactID)
	if err != nil {
		s.writeServiceError(w, r, err, fileNotFound)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, fileNotFound)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "File deleted successfully"})
}

// serveUpload streams stored bytes by their storage path. The route is public.
func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, name := vars["date"], vars["name"]
	if _, err := time.Parse(common.DateLayout, date); err != nil || name != path.Base(name) || name == ".." {
		writeError(w, http.StatusNotFound, fileNotFound)
		return
	}

	rc, err := s.files.Open(r.Context(), date+"/"+name)
	if err != nil {
		s.writeServiceError(w, r, err, fileNotFound)
		return
	}
	defer rc.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")

	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, rs)
		return
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.Copy(w, rc)
	}
}
