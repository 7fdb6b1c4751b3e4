package rest

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/google/uuid"
)

// violations maps a request field to what is wrong with it.
type violations map[string]string

func (v violations) add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

func (v violations) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "must not be empty")
	}
}

func (v violations) optional(field string, value *string) {
	if value != nil {
		v.required(field, *value)
	}
}

func validateCredentials(email, password string) violations {
	v := violations{}

	v.required("email", email)
	if _, ok := v["email"]; !ok && !isEmail(email) {
		v.add("email", "must be a valid email address")
	}

	if password == "" {
		v.add("password", "must not be empty")
	} else if len(password) > auth.MaxPasswordLength {
		v.add("password", "must be at most 72 bytes")
	}

	return v
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validateContact(req contactRequest) violations {
	v := violations{}
	v.required("name", req.Name)
	v.required("phone", req.Phone)
	v.required("address", req.Address)
	return v
}

func validatePatch(req patchRequest) violations {
	v := violations{}
	v.optional("name", req.Name)
	v.optional("phone", req.Phone)
	v.optional("address", req.Address)
	return v
}

// parseID returns the canonical form of a UUID path or form value.
func parseID(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
