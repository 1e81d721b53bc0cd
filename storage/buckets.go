package storage

import (
	"context"
	"net/http"
	"net/url"
)

// ListBuckets returns every bucket the token may see.
func (c *Client) ListBuckets(ctx context.Context) ([]BucketInformation, error) {
	var buckets []BucketInformation
	if err := c.h.JSON(ctx, http.MethodGet, "/bucket", nil, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetBucket fetches a single bucket by id.
func (c *Client) GetBucket(ctx context.Context, id string) (*BucketInformation, error) {
	var b BucketInformation
	if err := c.h.JSON(ctx, http.MethodGet, "/bucket/"+url.PathEscape(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

type createBucketRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

// CreateBucket creates a bucket with the given id; public buckets serve
// their objects without authentication.
func (c *Client) CreateBucket(ctx context.Context, id string, public bool) error {
	return c.h.JSON(ctx, http.MethodPost, "/bucket",
		createBucketRequest{ID: id, Name: id, Public: public}, nil)
}

// EmptyBucket removes every object in the bucket but keeps the bucket.
func (c *Client) EmptyBucket(ctx context.Context, id string) error {
	return c.h.JSON(ctx, http.MethodPost, "/bucket/"+url.PathEscape(id)+"/empty", nil, nil)
}

// DeleteBucket removes an (empty) bucket.
func (c *Client) DeleteBucket(ctx context.Context, id string) error {
	return c.h.JSON(ctx, http.MethodDelete, "/bucket/"+url.PathEscape(id), nil, nil)
}
