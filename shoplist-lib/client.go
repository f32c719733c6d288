// ABOUTME: Main client for the Shoplist library providing share codes and shopping data
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package shoplist

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"shoplist-api/core/domain"
	coreerrors "shoplist-api/core/errors"
	"shoplist-api/core/history"
	"shoplist-api/core/interfaces"
	"shoplist-api/core/share"
	"shoplist-api/core/snapshot"
	"shoplist-api/core/workers"
	"shoplist-api/infrastructure/store"
	"shoplist-api/pkg/config"
)

// Client is the main entry point for the Shoplist library
type Client struct {
	shares    *share.ShareService
	snapshots *snapshot.Service
	sweeper   *workers.SweepWorker

	// closer is nil when the caller supplied the store
	closer io.Closer
	logger interfaces.Logger

	mu     sync.RWMutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// Store takes precedence over StoreConfig
	Store       interfaces.Store
	StoreConfig config.StoreConfig

	Logger interfaces.Logger
	Clock  func() time.Time

	// Zero values keep the service defaults
	ShareTTL   time.Duration
	CodeLength int

	// SweepInterval enables the background sweeper when positive
	SweepInterval time.Duration
}

// NewClient creates a new Shoplist client with the given options
func NewClient(options ...Option) (*Client, error) {
	cfg := defaultConfig()

	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		return nil, NewError(ErrorTypeConfiguration, "logger is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	c := &Client{logger: cfg.Logger}

	kv := cfg.Store
	if kv == nil {
		opened, closer, err := store.New(cfg.StoreConfig, cfg.Logger)
		if err != nil {
			return nil, NewError(ErrorTypeConfiguration, "failed to open store").
				WithCause(err).
				WithContext("type", cfg.StoreConfig.Type)
		}
		kv = opened
		c.closer = closer
	}

	deps := interfaces.Dependencies{
		Store:  kv,
		Logger: cfg.Logger,
	}

	shareOpts := []share.Option{share.WithClock(cfg.Clock)}
	if cfg.ShareTTL > 0 {
		shareOpts = append(shareOpts, share.WithTTL(cfg.ShareTTL))
	}
	if cfg.CodeLength > 0 {
		shareOpts = append(shareOpts, share.WithCodeLength(cfg.CodeLength))
	}
	c.shares = share.NewShareService(deps, shareOpts...)
	c.snapshots = snapshot.NewService(deps, c.shares, snapshot.WithClock(cfg.Clock))

	if cfg.SweepInterval > 0 {
		sweepCfg := workers.DefaultSweepConfig()
		sweepCfg.Interval = cfg.SweepInterval
		c.sweeper = workers.NewSweepWorker(c.shares, sweepCfg, cfg.Logger)
		if err := c.sweeper.Start(); err != nil {
			c.closeStore()
			return nil, NewError(ErrorTypeInternal, "failed to start sweeper").WithCause(err)
		}
	}

	return c, nil
}

// Close stops the sweeper and releases a store opened by the client
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.sweeper != nil {
		if err := c.sweeper.Stop(); err != nil {
			c.logger.Warn("Sweeper did not stop cleanly", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return c.closeStore()
}

func (c *Client) closeStore() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// ShareProducts stores produtos under a new code
func (c *Client) ShareProducts(ctx context.Context, produtos []json.RawMessage) (*Share, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	code, entry, err := c.shares.CreateShare(ctx, produtos)
	if err != nil {
		return nil, wrapCoreError(err)
	}
	return toShare(code, entry), nil
}

// GetSharedProducts redeems code. Redemption does not consume the code.
func (c *Client) GetSharedProducts(ctx context.Context, code string) (*Share, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	entry, err := c.shares.ResolveShare(ctx, code)
	if err != nil {
		return nil, wrapCoreError(err)
	}
	return toShare(domain.NormalizeShareCode(code), entry), nil
}

// ListShares returns the shares that are still redeemable
func (c *Client) ListShares(ctx context.Context) ([]ShareSummary, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	summaries := []ShareSummary{}
	for s, err := range c.shares.ListActiveShares(ctx) {
		if err != nil {
			return nil, wrapCoreError(err)
		}
		summaries = append(summaries, toShareSummary(s))
	}
	return summaries, nil
}

// Sweep removes expired shares and returns how many were removed
func (c *Client) Sweep(ctx context.Context) (int, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}

	n, err := c.shares.Sweep(ctx)
	return n, wrapCoreError(err)
}

// LoadSnapshot returns the user's shopping data, or the starter data for a new user
func (c *Client) LoadSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	s, err := c.snapshots.Load(ctx, userID)
	return s, wrapCoreError(err)
}

// SaveSnapshot replaces the user's shopping data
func (c *Client) SaveSnapshot(ctx context.Context, userID string, s *Snapshot) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	return wrapCoreError(c.snapshots.Save(ctx, userID, s))
}

// CompleteList marks a list as concluded and records its prices
func (c *Client) CompleteList(ctx context.Context, userID, listID string) (*Lista, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	l, err := c.snapshots.CompleteList(ctx, userID, listID)
	return l, wrapCoreError(err)
}

// ReopenList clears a list's concluded state
func (c *Client) ReopenList(ctx context.Context, userID, listID string) (*Lista, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	l, err := c.snapshots.ReopenList(ctx, userID, listID)
	return l, wrapCoreError(err)
}

// ImportShared copies the selected shared products into the user's catalog
func (c *Client) ImportShared(ctx context.Context, userID, code string, productIDs []string) (*ImportResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	res, err := c.snapshots.ImportShared(ctx, userID, code, productIDs)
	return res, wrapCoreError(err)
}

// History summarizes the user's concluded lists
func (c *Client) History(ctx context.Context, userID string) (*PurchaseHistory, error) {
	s, err := c.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	h := history.BuildHistory(s.Listas)
	return &h, nil
}

// PriceStats summarizes the price history of one of the user's products
func (c *Client) PriceStats(ctx context.Context, userID, productID string) (*PriceStats, error) {
	s, err := c.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, ok := s.FindProduto(productID)
	if !ok {
		return nil, wrapCoreError(&coreerrors.NotFoundError{Resource: "product", ID: productID})
	}

	stats := history.ComputePriceStats(p)
	return &stats, nil
}
