package llm

import (
	"errors"
	"strings"
)

// ErrFatalAPI marks provider errors that will not go away on retry:
// exhausted quota, billing problems, bad credentials.
var ErrFatalAPI = errors.New("fatal API error")

var fatalPatterns = []string{
	"credit balance",
	"rate limit",
	"quota",
	"billing",
	"api key",
	"authentication",
	"unauthorized",
	"401",
	"403",
}

// isFatalAPIError reports whether the error chain mentions a quota, billing,
// or auth failure.
func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range fatalPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// wrapFatalError tags fatal errors with ErrFatalAPI so callers can detect
// them with errors.Is. Non-fatal errors pass through unchanged.
func wrapFatalError(err error) error {
	if err == nil {
		return nil
	}
	if isFatalAPIError(err) {
		return errors.Join(ErrFatalAPI, err)
	}
	return err
}
