// Package domain defines authentication types for the session-credential
// exchange against the external platform.
package domain

// CredentialStatus is the outcome of an explicit credential health check.
// An invalid credential is a regular outcome here, not an error: the check
// endpoint reports it without failing the HTTP call.
type CredentialStatus struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}
