package http

// NetworkError reports a transport-level failure: DNS resolution,
// connection refused, timeout, TLS handshake, or a canceled context. HTTP
// error statuses are response data, never a NetworkError.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return "request failed for " + e.URL + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
