// Package server provides the inboxd HTTP JSON API.
//
// Every request authenticates with a Gmail bearer token in the
// Authorization header. The token is hashed into a session ID, and each
// session caches its normalized inbox so mutations and searches operate
// on the records a list request already loaded. Health probes live on
// the API listener; Prometheus metrics are served from a dedicated
// MetricsServer port.
//
// # Endpoints
//
//	GET    /api/v1/messages             list inbox (query: max, category, refresh)
//	POST   /api/v1/search               evaluate filter criteria against the inbox
//	GET    /api/v1/stats                per-category inbox statistics
//	POST   /api/v1/send                 send a plain text email
//	POST   /api/v1/messages/{id}/read   mark a message read
//	POST   /api/v1/messages/{id}/star   toggle the star on a message
//	DELETE /api/v1/messages/{id}        move a message to trash
//	GET    /healthz                     liveness probe
//	GET    /readyz                      readiness probe
package server
