package commands

import (
	"errors"

	"github.com/mkhera/voluntree-cli/pkg/clients/apiclient"
)

// presentError rewrites wire-level failures into the user-facing message
// (server text, then network hint, then generic fallback). Local errors such
// as validation failures already read well and pass through unchanged.
func presentError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) || apiclient.IsTransport(err) || errors.Is(err, apiclient.ErrSessionExpired) {
		return errors.New(apiclient.UserMessage(err))
	}
	return err
}
