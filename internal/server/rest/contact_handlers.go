package rest

import (
	"net/http"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/gorilla/mux"
)

const contactNotFound = "Contact with this id does not found"

type contactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type patchRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if v := validateContact(req); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	c, err := s.contacts.Create(r.Context(), id.UserID, services.ContactInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	list, err := s.contacts.List(r.Context(), id.UserID)
	if err != nil {
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	contactID, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	c, err := s.contacts.Get(r.Context(), id.UserID, contactID)
	if err != nil {
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	contactID, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	var req patchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if v := validatePatch(req); len(v) > 0 {
		writeViolations(w, v)
		return
	}

	c, err := s.contacts.Update(r.Context(), id.UserID, contactID, models.ContactPatch{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	contactID, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	if _, err := s.contacts.Delete(r.Context(), id.UserID, contactID); err != nil {
		s.writeServiceError(w, r, err, contactNotFound)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Contact deleted successfully"})
}
