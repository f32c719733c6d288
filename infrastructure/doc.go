// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - store: factory that picks a backend from configuration
// - store/memory: process-local store backed by go-cache
// - store/redis: Redis store with atomic create-if-absent
// - store/sqlite: SQLite store for single-node deployments
// - store/storetest: contract tests shared by every backend
// - http/standard: retrying transport for idempotent outgoing requests
// - identity/supabase: user signup and token verification via gotrue-go
// - logger/logrus: JSON logger with optional rotating file
//
// # Store
//
//	kv, closer, err := store.New(config.StoreConfig{Type: "redis", Redis: redisCfg}, logger)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	created, err := kv.SetIfAbsent(ctx, "shared-products:ABC123", data)
//
// # Identity Provider
//
//	transport := standard.NewRetryTransport(http.DefaultTransport)
//	identity := supabase.NewClient(url, serviceKey, transport, 10*time.Second, logger)
//	user, err := identity.VerifyToken(ctx, accessToken)
package infrastructure
