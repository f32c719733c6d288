// Package api provides the HTTP API layer for the Shoplist application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration, CORS and route registration
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: request IDs, logging, rate limiting and feature flags
//
// # Routes
//
//	GET  /health
//	POST /signup
//	POST /share-products
//	GET  /shared-products
//	GET  /shared-products/{code}
//	GET  /me/snapshot                     (bearer token)
//	PUT  /me/snapshot                     (bearer token)
//	POST /me/lists/{listId}/complete      (bearer token)
//	POST /me/lists/{listId}/reopen        (bearer token)
//	POST /me/import                       (bearer token)
//	GET  /me/history                      (bearer token)
//	GET  /me/products/{productId}/prices  (bearer token)
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    Flags:      featureflags.NewEnvManager("FEATURE_"),
//	    RateLimit:  100,
//	    RateWindow: 15 * time.Minute,
//	})
//	api.RegisterRoutes(humaAPI, api.Services{
//	    Shares:    shareService,
//	    Snapshots: snapshotService,
//	    Identity:  identity,
//	})
//
//	http.ListenAndServe(":3000", router)
//
// # Error Handling
//
// Every error response has a single field:
//
//	{"error": "Produtos não encontrados ou código expirado"}
//
// Core errors are mapped to status codes in handlers/errors.go.
package api
