package supago

import (
	"context"

	"github.com/supabase-community/postgrest-go"
)

// From returns a query builder scoped to table, with a fresh bearer token
// attached. Query construction and execution are entirely the builder's
// business; see the postgrest-go documentation.
func (c *Client) From(ctx context.Context, table string) (*postgrest.QueryBuilder, error) {
	if err := c.ensureFreshToken(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rest.From(table), nil
}

// Rpc calls the stored procedure fn with params as its body and returns
// the raw response, after the same fresh-token check as From.
func (c *Client) Rpc(ctx context.Context, fn string, params any) (string, error) {
	if err := c.ensureFreshToken(ctx); err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := c.rest.Rpc(fn, "", params)
	if c.rest.ClientError != nil {
		return "", c.rest.ClientError
	}
	return res, nil
}
