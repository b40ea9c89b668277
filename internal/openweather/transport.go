package openweather

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per request id used to correlate logs.
const RequestIDHeader = "X-Request-ID"

// queryParam is a RoundTripper that adds a query parameter to every request.
type queryParam struct {
	next  http.RoundTripper
	name  string
	value string
}

func (q *queryParam) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	values := r.URL.Query()
	values.Set(q.name, q.value)
	r.URL.RawQuery = values.Encode()
	return q.next.RoundTrip(r)
}

// requestID is a RoundTripper that stamps requests lacking an id with a new uuid.
type requestID struct {
	next http.RoundTripper
}

func (t *requestID) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(RequestIDHeader, uuid.NewString())
	return t.next.RoundTrip(r)
}

// chain wraps base with the api key, units and language decorators.
func chain(base http.RoundTripper, cfg Config) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = base
	rt = &queryParam{next: rt, name: "lang", value: cfg.Lang}
	rt = &queryParam{next: rt, name: "units", value: cfg.Units}
	rt = &queryParam{next: rt, name: "appid", value: cfg.APIKey}
	return &requestID{next: rt}
}
