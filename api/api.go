// Package api exposes one typed function per backend endpoint. The
// functions carry no business logic: they forward to the HTTP client,
// log failures for diagnostics and return them untouched. No retries,
// no backoff; a failed request surfaces immediately to its caller.
package api

import "backoffice/client"

// API bundles the per-resource endpoint wrappers around one client.
type API struct {
	http *client.Client
}

// New wraps c.
func New(c *client.Client) *API {
	return &API{http: c}
}
