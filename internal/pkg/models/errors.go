package models

import "fmt"

// ConfigurationError means the requested slate has no entry in the static
// lookup tables (unknown season, or week outside the mapped range).
// Not retryable.
type ConfigurationError struct {
	Season int
	Week   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no identifier mapping for season %d week %d: %s", e.Season, e.Week, e.Reason)
}

// FetchError wraps any transport failure or non-2xx response from the
// scoreboard page or the odds service. The caller may retry the whole week.
type FetchError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Status, e.Body)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the odds service answered 2xx but the payload
// is missing the arrays/fields the reshaper needs (upstream schema change).
// Fatal for the requested week; no partial table is emitted.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return "malformed odds response: " + e.Detail
}
