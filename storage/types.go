package storage

import "encoding/json"

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// SortBy names the column and direction a listing is ordered by.
type SortBy struct {
	Column string    `json:"column"`
	Order  SortOrder `json:"order"`
}

// ListRequest configures an object listing. Build it with NewListRequest
// and the chainable setters:
//
//	req := storage.NewListRequest("avatars/").Limit(10).SortBy("name", storage.SortAscending)
type ListRequest struct {
	prefix string
	limit  *int64
	offset *int64
	sortBy *SortBy
	search *string
}

// NewListRequest starts a listing scoped to the given key prefix.
func NewListRequest(prefix string) *ListRequest {
	return &ListRequest{prefix: prefix}
}

// Limit caps the number of returned entries.
func (r *ListRequest) Limit(n int64) *ListRequest {
	r.limit = &n
	return r
}

// Offset skips the first n entries.
func (r *ListRequest) Offset(n int64) *ListRequest {
	r.offset = &n
	return r
}

// SortBy orders the listing by column in the given direction.
func (r *ListRequest) SortBy(column string, order SortOrder) *ListRequest {
	r.sortBy = &SortBy{Column: column, Order: order}
	return r
}

// Search filters entries by a search string.
func (r *ListRequest) Search(q string) *ListRequest {
	r.search = &q
	return r
}

type listRequestWire struct {
	Prefix string  `json:"prefix"`
	Limit  *int64  `json:"limit,omitempty"`
	Offset *int64  `json:"offset,omitempty"`
	SortBy *SortBy `json:"sortBy,omitempty"`
	Search *string `json:"search,omitempty"`
}

func (r *ListRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(listRequestWire{
		Prefix: r.prefix,
		Limit:  r.limit,
		Offset: r.offset,
		SortBy: r.sortBy,
		Search: r.search,
	})
}

// ObjectIdentifier is the backend's acknowledgement of an upload or update.
type ObjectIdentifier struct {
	ID  string `json:"Id"`
	Key string `json:"Key"`
}

// ObjectInformation describes one stored object. Timestamps are kept as
// the provider's RFC 3339 strings.
type ObjectInformation struct {
	Name           string             `json:"name"`
	BucketID       string             `json:"bucket_id"`
	Owner          string             `json:"owner"`
	OwnerID        string             `json:"owner_id"`
	Version        string             `json:"version"`
	ID             string             `json:"id"`
	UpdatedAt      string             `json:"updated_at"`
	CreatedAt      string             `json:"created_at"`
	LastAccessedAt string             `json:"last_accessed_at"`
	Metadata       map[string]any     `json:"metadata"`
	UserMetadata   map[string]any     `json:"user_metadata"`
	Buckets        *BucketInformation `json:"buckets,omitempty"`
}

// BucketInformation describes one bucket.
type BucketInformation struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Owner            string   `json:"owner"`
	Public           bool     `json:"public"`
	FileSizeLimit    *int64   `json:"file_size_limit"`
	AllowedMimeTypes []string `json:"allowed_mime_types"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// FileOptions tunes an upload or update. The zero value sends the body
// as application/octet-stream without caching hints.
type FileOptions struct {
	// ContentType is the MIME type stored with the object.
	ContentType string
	// CacheControl is the max-age (in seconds, as a string) the backend
	// serves in Cache-Control headers for the object.
	CacheControl string
	// Upsert overwrites an existing object instead of failing.
	Upsert bool
}
