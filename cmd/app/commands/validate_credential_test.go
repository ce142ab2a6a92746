package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/vttbridge/relay/internal/auth/domain"
)

func TestRunValidateCredential_BlankCookie(t *testing.T) {
	var buf bytes.Buffer
	err := RunValidateCredential(context.Background(), "   ", "text", IOTuple{Writer: &buf})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blank")
}

func TestRenderCredentialStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	err := renderCredentialStatus(&authDomain.CredentialStatus{Valid: true, Token: "bearer"}, "text", &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "valid")
	// The bearer token itself must never be printed.
	assert.NotContains(t, buf.String(), "bearer")
}

func TestRenderCredentialStatus_TextInvalid(t *testing.T) {
	var buf bytes.Buffer
	status := &authDomain.CredentialStatus{Valid: false, Message: "credential rejected by upstream"}
	err := renderCredentialStatus(status, "text", &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "invalid")
	assert.Contains(t, buf.String(), "rejected")
}

func TestRenderCredentialStatus_JSON(t *testing.T) {
	var buf bytes.Buffer
	status := &authDomain.CredentialStatus{Valid: true, Token: "bearer"}
	err := renderCredentialStatus(status, "json", &buf)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, true, out["valid"])
	assert.NotContains(t, buf.String(), "bearer")
}

func TestRenderCredentialStatus_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	err := renderCredentialStatus(&authDomain.CredentialStatus{Valid: true}, "yaml", &buf)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
