package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"commission-catalog/cart"
	"commission-catalog/models"
	"commission-catalog/pricing"
)

var (
	// ErrCatalogUnavailable is returned when composition cannot read the full catalog
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrEmptyCart is returned when checking out an empty cart
	ErrEmptyCart = errors.New("cart is empty")
)

// StorefrontService composes selections against the live catalog and runs
// cart checkout
type StorefrontService struct {
	reader  *CatalogReader
	handoff *Handoff
	logger  *zap.Logger
	log     *zap.SugaredLogger
}

// NewStorefrontService creates a new StorefrontService
func NewStorefrontService(reader *CatalogReader, handoff *Handoff, logger *zap.Logger) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{reader: reader, handoff: handoff, logger: logger, log: logger.Sugar()}
}

// engine reads a fresh snapshot so availability is checked against what is
// persisted at the time of the call.
func (s *StorefrontService) engine(ctx context.Context) (*pricing.Engine, error) {
	catalog, errs := s.reader.Snapshot(ctx)
	if len(errs) > 0 {
		entities := make([]string, 0, len(errs))
		for _, e := range errs {
			entities = append(entities, e.Entity)
		}
		return nil, fmt.Errorf("%w: %s", ErrCatalogUnavailable, strings.Join(entities, ", "))
	}
	return pricing.NewEngine(catalog, s.logger), nil
}

// Preview composes req without touching any cart
func (s *StorefrontService) Preview(ctx context.Context, req models.SelectionRequest) (*models.ComposeResponse, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	svc, ok := engine.Catalog().Service(req.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pricing.ErrUnknownService, req.ServiceID)
	}
	return engine.Preview(req.ToSelection(svc.IsMultiUnitPack))
}

// AddToCart composes req and appends the result to c
func (s *StorefrontService) AddToCart(ctx context.Context, c *cart.Cart, req models.SelectionRequest) (*models.SelectedCommission, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}
	commission := preview.Commission
	commission.LocalID = c.Add(commission)
	s.log.Infof("🛒 Added %s to cart (local id %d): %d CLP / %.2f USD", commission.ServiceID, commission.LocalID, commission.Totals.CLP, commission.Totals.USD)
	return &commission, nil
}

// Checkout renders the order summary of c, builds the handoff link and
// clears the cart. Items are re-derived against a fresh snapshot, and the
// returned totals are the ones printed in the message.
func (s *StorefrontService) Checkout(ctx context.Context, c *cart.Cart) (*models.CheckoutResponse, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	summary, totals := engine.Settle(items)
	if stored := c.Total(); stored != totals {
		s.log.Warnf("⚠️ Checkout: cart total changed since it was built (%d CLP / %.2f USD -> %d CLP / %.2f USD)", stored.CLP, stored.USD, totals.CLP, totals.USD)
	}
	resp := &models.CheckoutResponse{
		Message: s.handoff.Message(summary),
		Link:    s.handoff.Link(summary),
		Totals:  totals,
	}
	c.Clear()

	s.log.Infof("📨 Checkout: %d commissions, %d CLP / %.2f USD", len(items), resp.Totals.CLP, resp.Totals.USD)
	return resp, nil
}
