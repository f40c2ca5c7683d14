package tavus

import "fmt"

// TransportError covers failures reaching the remote API at all: DNS,
// connect, TLS, timeout. These are retried only by an explicit user retry.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tavus: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError covers non-2xx statuses and structurally invalid bodies. It keeps
// the raw exchange for operator diagnostics; end users only ever see Message.
type APIError struct {
	Message    string
	StatusCode int
	RawBody    string
	RawJSON    map[string]interface{}
	RequestURL string
	Request    interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

// Debug shapes the diagnostic payload attached to failure envelopes.
func (e *APIError) Debug() map[string]interface{} {
	debug := map[string]interface{}{
		"status_code": e.StatusCode,
		"request_url": e.RequestURL,
	}
	if e.RawBody != "" {
		debug["raw_body"] = e.RawBody
	}
	if e.RawJSON != nil {
		debug["raw_json"] = e.RawJSON
	}
	if e.Request != nil {
		debug["request"] = e.Request
	}
	return debug
}
