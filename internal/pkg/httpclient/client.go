package httpclient

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps resty for calls to the payment gateways and the Telegram API.
type Client struct {
	r *resty.Client
}

// New creates a new HTTP client with sensible defaults.
func New() *Client {
	r := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Client{r: r}
}

// WithTimeout sets a custom timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.r.SetTimeout(d)
	return c
}

// WithBaseURL sets a base URL for all requests.
func (c *Client) WithBaseURL(url string) *Client {
	c.r.SetBaseURL(url)
	return c
}

// WithHeader sets a header applied to every request.
func (c *Client) WithHeader(key, value string) *Client {
	c.r.SetHeader(key, value)
	return c
}

// Get sends a GET request and returns the response body.
func (c *Client) Get(url string) ([]byte, error) {
	resp, err := c.r.R().Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return resp.Body(), fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(url string, body interface{}) ([]byte, error) {
	req := c.r.R().SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return resp.Body(), fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
