package services

import (
	"context"
	"time"

	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReconcileResult reports what Reconcile did with a product.
type ReconcileResult int

const (
	// Unchanged means no override was present or the offer has not expired.
	Unchanged ReconcileResult = iota
	// Reverted means an expired override was cleared and the price restored.
	Reverted
)

// ExpiryMonitor reverts stale accepted-offer price overrides. It runs in two
// modes: opportunistically per product whenever a caller refreshes the
// catalog, and as a cron-scheduled sweep across all products holding an
// override, so reversion does not depend on client activity.
type ExpiryMonitor struct {
	products repository.ProductRepo
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewExpiryMonitor(products repository.ProductRepo, logger *zap.Logger) *ExpiryMonitor {
	return &ExpiryMonitor{
		products: products,
		logger:   logger,
	}
}

// Reconcile checks one product's override state against now and reverts it
// if expired. Repeated calls after reversion are no-ops.
func (m *ExpiryMonitor) Reconcile(ctx context.Context, productID string, now time.Time) (ReconcileResult, error) {
	product, err := m.products.FindByID(ctx, productID)
	if err == repository.ErrNoDocument {
		return Unchanged, apperrors.ErrProductNotFound
	}
	if err != nil {
		return Unchanged, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if !product.HasActiveOffer() {
		return Unchanged, nil
	}
	if !now.After(*product.OfferExpiresAt) {
		return Unchanged, nil
	}
	if product.OriginalPrice == nil {
		// Partial override with no price to restore. Never written by the
		// acceptance path, so flag the document instead of guessing.
		m.logger.Error("Override missing originalPrice, skipping revert",
			zap.String("productID", productID))
		return Unchanged, nil
	}

	set := map[string]interface{}{"price": *product.OriginalPrice}
	unset := []string{"currentBid", "buyerID", "offerAcceptedAt", "offerExpiresAt", "originalPrice"}
	if err := m.products.Update(ctx, productID, set, unset); err != nil {
		return Unchanged, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	m.logger.Info("Expired offer reverted",
		zap.String("productID", productID),
		zap.Float64("restoredPrice", *product.OriginalPrice),
	)
	return Reverted, nil
}

// Sweep reconciles every product that currently holds an override. Failures
// on individual products are logged and do not stop the sweep.
func (m *ExpiryMonitor) Sweep(ctx context.Context, now time.Time) {
	products, err := m.products.FindWithActiveOffers(ctx)
	if err != nil {
		m.logger.Error("Offer sweep failed to list products", zap.Error(err))
		return
	}

	reverted := 0
	for _, p := range products {
		result, err := m.Reconcile(ctx, p.ID, now)
		if err != nil {
			m.logger.Warn("Offer sweep reconcile failed",
				zap.String("productID", p.ID), zap.Error(err))
			continue
		}
		if result == Reverted {
			reverted++
		}
	}
	if reverted > 0 {
		m.logger.Info("Offer sweep completed", zap.Int("reverted", reverted))
	}
}

// Start schedules the sweep with the given cron spec (e.g. "@every 5m").
func (m *ExpiryMonitor) Start(spec string) error {
	m.cron = cron.New()
	_, err := m.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		m.Sweep(ctx, time.Now().UTC())
	})
	if err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

// Stop halts the scheduled sweep, waiting for a running sweep to finish.
func (m *ExpiryMonitor) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}
