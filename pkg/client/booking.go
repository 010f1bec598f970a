package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"resourcebook/pkg/model"
)

const (
	BookingsPath      = "/bookings"
	BookingDeletePath = "/booking-delete/"
)

// APIError is returned by BookingClient for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api: status %d: %s", e.StatusCode, e.Message)
}

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest) (*model.InsertResult, error) {
	return c.CreateWithIdempotencyKey(ctx, req, "")
}

// CreateWithIdempotencyKey sends key as Idempotency-Key so a retried request
// gets the first successful response back instead of a conflict.
func (c *BookingClient) CreateWithIdempotencyKey(ctx context.Context, req *model.BookingRequest, key string) (*model.InsertResult, error) {
	var headers map[string]string
	if key != "" {
		headers = map[string]string{"Idempotency-Key": key}
	}

	resp, err := c.httpClient.POSTWithHeaders(ctx, BookingsPath, req, headers)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result model.InsertResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("failed to decode insert result: %w", err)
	}
	return &result, nil
}

func (c *BookingClient) List(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	q := url.Values{}
	if filter.Resource != "" {
		q.Set("resource", filter.Resource)
	}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}

	path := BookingsPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var bookings []model.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (c *BookingClient) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	resp, err := c.httpClient.DELETE(ctx, BookingDeletePath+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result model.DeleteResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("failed to decode delete result: %w", err)
	}
	return &result, nil
}

func (c *BookingClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(ctx, maxWait)
}

func checkStatus(resp *Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
}
