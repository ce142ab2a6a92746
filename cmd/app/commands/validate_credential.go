package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vttbridge/relay/internal/app"
	authDomain "github.com/vttbridge/relay/internal/auth/domain"
	"github.com/vttbridge/relay/internal/config"
)

// RunValidateCredential checks a session credential against the upstream auth
// service and prints the outcome.
func RunValidateCredential(ctx context.Context, cookie, format string, ioTuple IOTuple) error {
	if strings.TrimSpace(cookie) == "" {
		return fmt.Errorf("cookie cannot be blank")
	}

	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	tokenUseCase, err := container.TokenUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize token use case: %w", err)
	}

	status, err := tokenUseCase.ValidateCredential(ctx, cookie)
	if err != nil {
		return fmt.Errorf("credential validation failed: %w", err)
	}

	return renderCredentialStatus(status, format, ioTuple.Writer)
}

// renderCredentialStatus writes the validation outcome as text or JSON. The
// bearer token is never printed; only whether one was obtained.
func renderCredentialStatus(status *authDomain.CredentialStatus, format string, w io.Writer) error {
	switch format {
	case "json":
		out := map[string]any{"valid": status.Valid}
		if status.Message != "" {
			out["message"] = status.Message
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "text":
		if status.Valid {
			fmt.Fprintln(w, "credential is valid: bearer token obtained")
		} else {
			fmt.Fprintf(w, "credential is invalid: %s\n", status.Message)
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
