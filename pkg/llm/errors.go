package llm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoAPIKey is returned before any network call when the active config has no API key
var ErrNoAPIKey = &ConfigError{Reason: "api key is not configured"}

// maxErrorBody limits how much of a failed response body is kept in errors
const maxErrorBody = 200

// ConfigError reports a configuration problem detected before any network call
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Reason
}

// TransportError reports a network failure where no response was received
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// newTransportError wraps a failed round trip with the api key removed from the request url,
// gemini sends the key as a query parameter and *url.Error prints the full url.
func newTransportError(err error, apiKey string) *TransportError {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = &url.Error{Op: uerr.Op, URL: redactKey(uerr.URL, apiKey), Err: uerr.Err}
	}
	if apiKey != "" && strings.Contains(err.Error(), apiKey) {
		err = errors.New(strings.ReplaceAll(err.Error(), apiKey, "****"))
	}
	return &TransportError{Err: err}
}

// redactKey masks the key query parameter and any literal occurrence of apiKey in rawURL
func redactKey(rawURL, apiKey string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Query().Has("key") {
		q := u.Query()
		q.Set("key", "****")
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}
	if apiKey == "" {
		return rawURL
	}
	rawURL = strings.ReplaceAll(rawURL, url.QueryEscape(apiKey), "****")
	return strings.ReplaceAll(rawURL, apiKey, "****")
}

// ProtocolError reports a non-2xx response, Body is truncated
type ProtocolError struct {
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// ContentError reports a 2xx response without usable text
type ContentError struct {
	Reason string
}

func (e *ContentError) Error() string {
	return "content error: " + e.Reason
}

// VisionUnsupportedError is a protocol error that looks like the model rejected images.
// It triggers a single text-only retry.
type VisionUnsupportedError struct {
	*ProtocolError
}

func (e *VisionUnsupportedError) Error() string {
	return "vision unsupported: " + e.ProtocolError.Error()
}

func (e *VisionUnsupportedError) Unwrap() error {
	return e.ProtocolError
}

// newProtocolError builds a ProtocolError keeping at most maxErrorBody bytes of body
func newProtocolError(status int, body []byte) *ProtocolError {
	return &ProtocolError{Status: status, Body: truncate(string(body), maxErrorBody)}
}

// asVisionUnsupported reclassifies a protocol error of a request that carried images.
// Status 400 or a body mentioning image/vision/multimodal support qualifies.
func asVisionUnsupported(err *ProtocolError, fullBody []byte) error {
	if err.Status == 400 {
		return &VisionUnsupportedError{ProtocolError: err}
	}
	body := strings.ToLower(string(fullBody))
	for _, marker := range []string{"image", "vision", "multimodal", "not supported"} {
		if strings.Contains(body, marker) {
			return &VisionUnsupportedError{ProtocolError: err}
		}
	}
	return err
}

// IsRetryableStreamError reports whether a streaming failure should fall back to the buffered path
func IsRetryableStreamError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// truncate cuts s to at most n bytes without splitting a utf-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
