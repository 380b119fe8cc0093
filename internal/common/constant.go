// Package common contains shared constants and sentinel errors used across
// eventdesk components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on mutating event requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a single REST call with server-side logs.
const RequestIDHeaderName = "X-Request-ID"

// Durable session keys. adminInfo holds the full identity payload returned by
// the login endpoint, adminToken only the bearer token so presence can be
// checked without decoding the payload.
const (
	SessionInfoKey  = "adminInfo"
	SessionTokenKey = "adminToken"
)
