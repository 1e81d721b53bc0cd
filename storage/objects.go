package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"
)

// List returns the objects in bucket matching req, in the requested order.
func (c *Client) List(ctx context.Context, bucket string, req *ListRequest) ([]ObjectInformation, error) {
	if req == nil {
		req = NewListRequest("")
	}
	var objects []ObjectInformation
	err := c.h.JSON(ctx, http.MethodPost, "/object/list/"+url.PathEscape(bucket), req, &objects)
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// Download fetches the raw content of bucket/path.
func (c *Client) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	req, err := c.h.NewRequest(ctx, http.MethodGet, objectPath(bucket, path), nil)
	if err != nil {
		return nil, err
	}
	return c.h.DoRaw(req)
}

// Upload creates bucket/path with the given content. opts may be nil.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, opts *FileOptions) (*ObjectIdentifier, error) {
	return c.write(ctx, http.MethodPost, bucket, path, data, opts)
}

// Update replaces the content of an existing bucket/path. opts may be nil.
func (c *Client) Update(ctx context.Context, bucket, path string, data []byte, opts *FileOptions) (*ObjectIdentifier, error) {
	return c.write(ctx, http.MethodPut, bucket, path, data, opts)
}

func (c *Client) write(ctx context.Context, method, bucket, path string, data []byte, opts *FileOptions) (*ObjectIdentifier, error) {
	req, err := c.h.NewRequest(ctx, method, objectPath(bucket, path), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &FileOptions{}
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	} else {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	if opts.CacheControl != "" {
		req.Header.Set("Cache-Control", "max-age="+opts.CacheControl)
	}
	if opts.Upsert {
		req.Header.Set("x-upsert", "true")
	}

	var id ObjectIdentifier
	if err := c.h.Do(req, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Delete removes bucket/path.
func (c *Client) Delete(ctx context.Context, bucket, path string) error {
	req, err := c.h.NewRequest(ctx, http.MethodDelete, objectPath(bucket, path), nil)
	if err != nil {
		return err
	}
	return c.h.Do(req, nil)
}

type moveRequest struct {
	BucketID       string `json:"bucketId"`
	SourceKey      string `json:"sourceKey"`
	DestinationKey string `json:"destinationKey"`
}

// Move renames bucket/src to bucket/dst.
func (c *Client) Move(ctx context.Context, bucket, src, dst string) error {
	return c.h.JSON(ctx, http.MethodPost, "/object/move",
		moveRequest{BucketID: bucket, SourceKey: src, DestinationKey: dst}, nil)
}

// Copy duplicates bucket/src to bucket/dst.
func (c *Client) Copy(ctx context.Context, bucket, src, dst string) error {
	return c.h.JSON(ctx, http.MethodPost, "/object/copy",
		moveRequest{BucketID: bucket, SourceKey: src, DestinationKey: dst}, nil)
}

type signRequest struct {
	ExpiresIn int64 `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// CreateSignedURL returns a URL that grants access to bucket/path for the
// given duration without credentials.
func (c *Client) CreateSignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	var resp signResponse
	err := c.h.JSON(ctx, http.MethodPost, "/object/sign/"+url.PathEscape(bucket)+"/"+escapePath(path),
		signRequest{ExpiresIn: int64(expiresIn.Seconds())}, &resp)
	if err != nil {
		return "", err
	}
	return c.base + resp.SignedURL, nil
}

func objectPath(bucket, path string) string {
	return "/object/" + url.PathEscape(bucket) + "/" + escapePath(path)
}
