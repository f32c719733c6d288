// Package core contains the business logic for the Shoplist API.
// It is framework-agnostic and can be used without the HTTP layer,
// as the shoplist-lib package does.
//
// The core package is organized into several sub-packages:
//
// - domain: share entries and codes, shopping snapshots, users
// - share: issues, resolves, lists and sweeps share codes
// - snapshot: loads and mutates a user's shopping data
// - history: purchase history and price statistics
// - workers: background sweeper for expired shares
// - errors: custom error types mapped to HTTP statuses by the api package
// - interfaces: contracts for external dependencies (store, logger, identity)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Store:  myStore,  // implements interfaces.Store
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	shares := share.NewShareService(deps, share.WithTTL(24*time.Hour))
//	code, entry, err := shares.CreateShare(ctx, []json.RawMessage{
//	    json.RawMessage(`{"id":"p1","nome":"Banana"}`),
//	})
//
//	snapshots := snapshot.NewService(deps, shares)
//	result, err := snapshots.ImportShared(ctx, userID, code.String(), []string{"p1"})
package core
