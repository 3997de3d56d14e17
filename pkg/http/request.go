package http

import (
	"context"
	"errors"
)

// RequestMethod represents the HTTP method for the request.
type RequestMethod string

const (
	GET    RequestMethod = "GET"
	POST   RequestMethod = "POST"
	PUT    RequestMethod = "PUT"
	DELETE RequestMethod = "DELETE"
)

// Request is a fluent builder for a single call on a Client.
type Request struct {
	ctx         context.Context
	client      *Client
	method      RequestMethod
	path        string
	queryParams map[string]string
	headers     map[string]string
	body        any
	successResp any
	errorResp   any
	backoff     *BackoffConfig
}

// NewHttpClientRequest creates a GET request on "/" for the given client.
func NewHttpClientRequest(client *Client) *Request {
	return &Request{
		ctx:    context.Background(),
		client: client,
		method: GET,
		path:   "/",
	}
}

// WithContext sets the context used for the call and for backoff waits.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// WithMethod sets the HTTP method for the request.
func (r *Request) WithMethod(method RequestMethod) *Request {
	r.method = method
	return r
}

// WithPath sets the path for the request.
func (r *Request) WithPath(path string) *Request {
	r.path = path
	return r
}

// WithQueryParams sets the query parameters for the request.
func (r *Request) WithQueryParams(params map[string]string) *Request {
	r.queryParams = params
	return r
}

// WithHeaders sets per-request headers, applied after the client defaults.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	r.headers = headers
	return r
}

// WithBody sets the body for the request.
func (r *Request) WithBody(body any) *Request {
	r.body = body
	return r
}

// WithSuccessResp sets the value a 2xx body is decoded into.
func (r *Request) WithSuccessResp(successResp any) *Request {
	r.successResp = successResp
	return r
}

// WithErrorResp sets the value a non-2xx body is decoded into.
func (r *Request) WithErrorResp(errorResp any) *Request {
	r.errorResp = errorResp
	return r
}

// WithBackoff overrides the client's default retry policy for this request.
func (r *Request) WithBackoff(backoff *BackoffConfig) *Request {
	r.backoff = backoff
	return r
}

// Execute sends the request and returns the success response, error response, status code, and error if any.
func (r *Request) Execute() (any, any, int, error) {
	if r.client == nil {
		return nil, nil, 0, errors.New("client is required")
	}
	if r.method == "" {
		return nil, nil, 0, errors.New("method is required")
	}
	if r.path == "" {
		return nil, nil, 0, errors.New("path is required")
	}

	return r.client.doRequestWithBackoff(
		r.ctx,
		string(r.method),
		r.path,
		r.queryParams,
		r.headers,
		r.body,
		r.successResp,
		r.errorResp,
		r.backoff,
	)
}
