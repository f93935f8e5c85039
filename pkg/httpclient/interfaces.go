package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// query values are URL-encoded onto the request; headers may be nil.
type Client interface {
	Get(ctx context.Context, url string, query, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, query, headers map[string]string) (Response, error)
}

// Sender issues a request whose body is body encoded as JSON.
type Sender interface {
	Send(ctx context.Context, method, url string, body any, headers map[string]string) (Response, error)
}
