package models

import (
	"encoding/json"
	"fmt"
)

// Session is an authenticated admin: the bearer token plus the identity
// payload returned by the login endpoint, kept verbatim.
type Session struct {
	Token    string
	AdminID  string
	Email    string
	Identity json.RawMessage
}

// NewSession builds a Session from a raw login response body.
// The body must carry a non-empty "token".
func NewSession(payload []byte) (*Session, error) {
	var probe struct {
		Token string `json:"token"`
		ID    string `json:"id"`
		MID   string `json:"_id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if probe.Token == "" {
		return nil, fmt.Errorf("decode identity: missing token")
	}
	id := probe.ID
	if id == "" {
		id = probe.MID
	}
	return &Session{
		Token:    probe.Token,
		AdminID:  id,
		Email:    probe.Email,
		Identity: append(json.RawMessage(nil), payload...),
	}, nil
}

// Credentials is the body of login and register requests.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
