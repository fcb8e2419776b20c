package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/apperror"
	"github.com/comandero/pos-api/pkg/printer"
	"github.com/comandero/pos-api/pkg/receipt"
	"github.com/comandero/pos-api/pkg/relay"
)

// Dispatcher routes rendered documents to printers. Dispatch never returns an
// error: printing is best effort and a failed ticket must not fail the order
// mutation that triggered it. Print is the error-surfacing variant used for
// deliberate reprints.
type Dispatcher interface {
	Dispatch(ctx context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload)
	Print(ctx context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) error
}

// PrintService resolves (profile, kind) pairs to printer targets and sends
// documents either to a locally attached printer or to a relay agent over
// HTTP. It keeps an in-memory routing index rebuilt on every target change.
type PrintService struct {
	targetRepo repository.PrinterTargetRepository
	registry   *printer.Registry
	formatter  *receipt.Formatter
	logger     zerolog.Logger

	mu      sync.RWMutex
	index   map[string]uint
	targets map[uint]entity.PrinterTarget
	clients map[string]*relay.Client
}

// NewPrintService creates a new print dispatch service.
func NewPrintService(
	targetRepo repository.PrinterTargetRepository,
	registry *printer.Registry,
	formatter *receipt.Formatter,
	logger zerolog.Logger,
) *PrintService {
	return &PrintService{
		targetRepo: targetRepo,
		registry:   registry,
		formatter:  formatter,
		logger:     logger,
		index:      make(map[string]uint),
		targets:    make(map[uint]entity.PrinterTarget),
		clients:    make(map[string]*relay.Client),
	}
}

// Feed and cut applied when a document falls through to the default driver,
// since there is no target row to read them from. Same values the relay agent
// uses for jobs that carry none.
const (
	fallbackFeedLines = 3
	fallbackCut       = true
)

func routeKey(profile enum.PrintProfile, kind enum.DocumentKind) string {
	return string(profile) + "/" + string(kind)
}

// RebuildIndex reloads the active targets and rebuilds the routing index.
// Must be called after every target mutation and once at startup.
func (s *PrintService) RebuildIndex(ctx context.Context) error {
	targets, err := s.targetRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load printer targets: %w", err)
	}

	index := make(map[string]uint)
	byID := make(map[uint]entity.PrinterTarget)
	for _, t := range targets {
		byID[t.ID] = t
		for _, profile := range t.Profiles {
			for _, kind := range t.DocumentKinds {
				key := routeKey(enum.PrintProfile(profile), enum.DocumentKind(kind))
				if prev, ok := index[key]; ok {
					s.logger.Warn().
						Str("route", key).
						Uint("kept", prev).
						Uint("ignored", t.ID).
						Msg("duplicate printer route, keeping first")
					continue
				}
				index[key] = t.ID
			}
		}
	}

	s.mu.Lock()
	s.index = index
	s.targets = byID
	s.mu.Unlock()
	return nil
}

func (s *PrintService) resolve(profile enum.PrintProfile, kind enum.DocumentKind) (entity.PrinterTarget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.index[routeKey(profile, kind)]
	if !ok {
		return entity.PrinterTarget{}, false
	}
	target, ok := s.targets[id]
	return target, ok
}

func (s *PrintService) client(baseURL string) *relay.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[baseURL]; ok {
		return c
	}
	c := relay.NewClient(baseURL)
	s.clients[baseURL] = c
	return c
}

// Dispatch renders and prints a document on the target routed for the pair,
// or on the default driver when nothing is routed. Any failure is logged and
// swallowed.
func (s *PrintService) Dispatch(ctx context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) {
	if err := s.Print(ctx, profile, kind, payload); err != nil {
		s.logger.Error().Err(err).
			Str("profile", string(profile)).
			Str("kind", string(kind)).
			Uint("order_id", payload.Order.ID).
			Msg("print dispatch failed")
	}
}

// Print renders and prints a document, surfacing the failure to the caller.
// Used by the manual reprint endpoint; order mutations go through Dispatch.
func (s *PrintService) Print(ctx context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) error {
	target, ok := s.resolve(profile, kind)
	if !ok {
		// No target configured for the pair. A fresh install has zero
		// targets, so fall through to the default local driver.
		return s.printDefault(profile, kind, payload)
	}

	if target.Remote() {
		job := relay.Job{Type: kind, Payload: payload, Driver: target.DriverName}
		feed := target.FeedLines
		cut := target.CutPaper
		job.Feed = &feed
		job.Cut = &cut
		if _, err := s.client(*target.RelayURL).PrintJob(ctx, job); err != nil {
			return fmt.Errorf("relay %s: %w", *target.RelayURL, err)
		}
		return nil
	}

	content := s.Render(kind, payload)
	p, driver, err := s.registry.Resolve(target.DriverName)
	if err != nil {
		return err
	}
	if err := printer.Spool(p, content, target.FeedLines, target.CutPaper); err != nil {
		return fmt.Errorf("driver %s: %w", driver, err)
	}
	return nil
}

func (s *PrintService) printDefault(profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) error {
	p, driver, err := s.registry.Resolve("")
	if err != nil {
		return fmt.Errorf("no printer routed for %s/%s: %w", profile, kind, err)
	}
	s.logger.Debug().
		Str("profile", string(profile)).
		Str("kind", string(kind)).
		Str("driver", driver).
		Msg("no printer routed, using default driver")
	content := s.Render(kind, payload)
	if err := printer.Spool(p, content, fallbackFeedLines, fallbackCut); err != nil {
		return fmt.Errorf("driver %s: %w", driver, err)
	}
	return nil
}

// Render turns a job payload into the fixed-width document text for its kind.
func (s *PrintService) Render(kind enum.DocumentKind, payload receipt.JobPayload) string {
	switch kind {
	case enum.DocumentRaw:
		return payload.Content
	case enum.DocumentComanda:
		return s.formatter.KitchenTicket(payload.Order, payload.Items)
	case enum.DocumentPedido:
		return s.formatter.CashReceipt(payload.Order, payload.Items, payload.Customer)
	case enum.DocumentDelivery:
		return s.formatter.DeliveryVoucher(payload.Order, payload.Items, payload.Customer)
	case enum.DocumentAgregados:
		return s.formatter.Delta("AGREGADOS", payload.Order.ID, payload.Items)
	case enum.DocumentEliminados:
		return s.formatter.Delta("ELIMINADOS", payload.Order.ID, payload.Items)
	}
	return payload.Content
}

// RelayHealth queries the relay agent behind a remote target.
func (s *PrintService) RelayHealth(ctx context.Context, targetID uint) (*relay.HealthInfo, error) {
	target, err := s.remoteTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return s.client(*target.RelayURL).Health(ctx)
}

// RelayPrinters lists the drivers known to the relay agent behind a remote target.
func (s *PrintService) RelayPrinters(ctx context.Context, targetID uint) ([]string, error) {
	target, err := s.remoteTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return s.client(*target.RelayURL).Printers(ctx)
}

func (s *PrintService) remoteTarget(ctx context.Context, targetID uint) (*entity.PrinterTarget, error) {
	target, err := s.targetRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NewNotFoundError("Printer target")
	}
	if !target.Remote() {
		return nil, apperror.NewBadRequestError("printer target has no relay URL")
	}
	return target, nil
}
