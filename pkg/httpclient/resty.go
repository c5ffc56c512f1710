package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxRedirects = 10

// restyClient implements Client on top of resty.
type restyClient struct {
	client *resty.Client
}

// NewRestyClient builds a Client with the given per-request timeout.
// Redirects are followed; retries are not configured, a failed request
// is reported to the caller as-is.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	return &restyClient{client: c}
}

// Get issues a GET request with the provided headers.
func (r *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return &restyResponse{resp: resp}, nil
}

// restyResponse adapts resty.Response to the Response interface.
type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) Body() []byte    { return r.resp.Body() }
func (r *restyResponse) StatusCode() int { return r.resp.StatusCode() }
