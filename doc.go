// Package supago is a typed Go client for a Supabase-style hosted backend:
// authentication, Postgrest table queries and object storage behind one
// facade.
//
// # Overview
//
// The package provides:
//  1. A Client facade constructed from a project base URL and API key,
//     holding the current session (access/refresh token pair) behind a
//     lock and notifying an optional listener whenever it changes.
//  2. Auth operations (LoginWithEmail, SignUp, Logout, GetUser,
//     UpdateUser) backed by the auth sub-client.
//  3. Table access through From and Rpc, fully delegated to the external
//     postgrest-go query builder with the current bearer token attached.
//  4. A storage sub-client (Storage) for object and bucket operations.
//
// Quick start
//
//	client, err := supago.New("https://project.example.co", "anon-key")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.LoginWithEmail(ctx, "me@example.com", "secret"); err != nil {
//		log.Fatal(err)
//	}
//
//	type Country struct {
//		ID   int64  `json:"id"`
//		Name string `json:"name"`
//	}
//
//	qb, err := client.From(ctx, "countries")
//	if err != nil {
//		log.Fatal(err)
//	}
//	var countries []Country
//	if _, err := qb.Select("*", "", false).ExecuteTo(&countries); err != nil {
//		log.Fatal(err)
//	}
//
// # Sessions
//
// Login and refresh replace the held session; logout clears it. Before
// table and user operations the facade refreshes the session when it is
// within a minute of expiring. A refresh the provider rejects with HTTP
// 400 clears the session, after which operations report
// ErrMissingSession.
//
// # Error Handling
//
// Failures surface as typed values matched with errors.Is/errors.As:
// *httpx.APIError for non-2xx responses, *httpx.DecodeError for malformed
// payloads, ErrMissingSession, ErrSessionRefresh and ErrInvalidConfig
// from this package. Nothing is retried internally.
//
// Concurrency & Contexts
//
// The Client is safe for concurrent use. All operations accept
// context.Context and honor cancellation; each performs at most one HTTP
// round trip plus an occasional token refresh.
package supago
