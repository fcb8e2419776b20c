package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/pkg/printer"
	"github.com/comandero/pos-api/pkg/receipt"
)

// fakeTargetRepo is an in-memory PrinterTargetRepository.
type fakeTargetRepo struct {
	mu      sync.Mutex
	targets map[uint]entity.PrinterTarget
	nextID  uint
}

func newFakeTargetRepo() *fakeTargetRepo {
	return &fakeTargetRepo{targets: make(map[uint]entity.PrinterTarget)}
}

func (r *fakeTargetRepo) Create(_ context.Context, target *entity.PrinterTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	target.ID = r.nextID
	r.targets[target.ID] = *target
	return nil
}

func (r *fakeTargetRepo) GetByID(_ context.Context, id uint) (*entity.PrinterTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.targets[id]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (r *fakeTargetRepo) Update(_ context.Context, target *entity.PrinterTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[target.ID] = *target
	return nil
}

func (r *fakeTargetRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.targets, id)
	return nil
}

func (r *fakeTargetRepo) List(_ context.Context) ([]entity.PrinterTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PrinterTarget, 0, len(r.targets))
	for _, t := range r.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTargetRepo) ListActive(ctx context.Context) ([]entity.PrinterTarget, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, t := range all {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

// recordingPrinter captures spooled bytes so tests can inspect what a local
// dispatch would have sent to the device.
type recordingPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
}

func (p *recordingPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return true }

// failingPrinter refuses every job, standing in for a dead device.
type failingPrinter struct{}

func (p *failingPrinter) Print([]byte) error { return errors.New("device offline") }
func (p *failingPrinter) Close() error       { return nil }
func (p *failingPrinter) IsConnected() bool  { return false }

func newPrintService(repo *fakeTargetRepo, device printer.Printer) *PrintService {
	registry := printer.NewRegistry()
	registry.Register("caja", device)
	return NewPrintService(repo, registry, receipt.NewFormatter("Mundo Waffles"), zerolog.Nop())
}

func localTarget(name string, profiles, kinds []string) *entity.PrinterTarget {
	return &entity.PrinterTarget{
		Name:          name,
		DriverName:    "caja",
		DocumentKinds: kinds,
		Profiles:      profiles,
		Width:         receipt.DefaultWidth,
		CutPaper:      true,
		FeedLines:     3,
		Active:        true,
	}
}

func samplePayload() receipt.JobPayload {
	return receipt.JobPayload{
		Order: receipt.OrderSnapshot{
			ID:         7,
			Channel:    "counter",
			OccurredAt: "2026-03-14T18:30:00-03:00",
			Total:      5500,
		},
		Items: []receipt.ItemSnapshot{{Name: "Waffle clasico", Quantity: 1, UnitPrice: 5500}},
	}
}

func TestPrintRoutesToLocalTarget(t *testing.T) {
	repo := newFakeTargetRepo()
	device := &recordingPrinter{}
	svc := newPrintService(repo, device)

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, localTarget("cocina", []string{"kitchen"}, []string{"comanda"})))
	require.NoError(t, svc.RebuildIndex(ctx))

	err := svc.Print(ctx, enum.ProfileKitchen, enum.DocumentComanda, samplePayload())
	require.NoError(t, err)
	require.Len(t, device.jobs, 1)
	assert.Contains(t, string(device.jobs[0]), "WAFFLE CLASICO")
}

func TestPrintUnroutedPairUsesDefaultDriver(t *testing.T) {
	repo := newFakeTargetRepo()
	device := &recordingPrinter{}
	svc := newPrintService(repo, device)
	ctx := context.Background()
	require.NoError(t, svc.RebuildIndex(ctx))

	// Zero targets configured: the document still comes out on the
	// default local driver.
	err := svc.Print(ctx, enum.ProfileCounter, enum.DocumentPedido, samplePayload())
	require.NoError(t, err)
	require.Len(t, device.jobs, 1)
	assert.Contains(t, string(device.jobs[0]), "Waffle clasico")
}

func TestPrintUnroutedPairWithoutAnyDriver(t *testing.T) {
	svc := NewPrintService(newFakeTargetRepo(), printer.NewRegistry(),
		receipt.NewFormatter("Mundo Waffles"), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, svc.RebuildIndex(ctx))

	err := svc.Print(ctx, enum.ProfileCounter, enum.DocumentPedido, samplePayload())
	assert.ErrorContains(t, err, "no printer routed for counter/pedido")
}

func TestDispatchSwallowsErrors(t *testing.T) {
	repo := newFakeTargetRepo()
	device := &failingPrinter{}
	svc := newPrintService(repo, device)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, localTarget("caja", []string{"counter"}, []string{"pedido"})))
	require.NoError(t, svc.RebuildIndex(ctx))

	// The device rejects the job; Dispatch must not panic or surface anything.
	svc.Dispatch(ctx, enum.ProfileCounter, enum.DocumentPedido, samplePayload())
}

func TestRebuildIndexKeepsFirstOnDuplicate(t *testing.T) {
	repo := newFakeTargetRepo()
	device := &recordingPrinter{}
	svc := newPrintService(repo, device)
	ctx := context.Background()

	first := localTarget("caja principal", []string{"counter"}, []string{"pedido"})
	second := localTarget("caja respaldo", []string{"counter"}, []string{"pedido"})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, svc.RebuildIndex(ctx))

	target, ok := svc.resolve(enum.ProfileCounter, enum.DocumentPedido)
	require.True(t, ok)
	assert.Equal(t, first.ID, target.ID)
}

func TestRebuildIndexIgnoresInactiveTargets(t *testing.T) {
	repo := newFakeTargetRepo()
	svc := newPrintService(repo, &recordingPrinter{})
	ctx := context.Background()

	target := localTarget("apagada", []string{"counter"}, []string{"pedido"})
	target.Active = false
	require.NoError(t, repo.Create(ctx, target))
	require.NoError(t, svc.RebuildIndex(ctx))

	_, ok := svc.resolve(enum.ProfileCounter, enum.DocumentPedido)
	assert.False(t, ok)
}

func TestRenderPerKind(t *testing.T) {
	svc := newPrintService(newFakeTargetRepo(), &recordingPrinter{})
	payload := samplePayload()
	payload.Order.ReceiptNumber = "B-000007"
	payload.Content = "texto crudo"

	assert.Equal(t, "texto crudo", svc.Render(enum.DocumentRaw, payload))
	assert.Contains(t, svc.Render(enum.DocumentComanda, payload), "WAFFLE CLASICO")
	assert.Contains(t, svc.Render(enum.DocumentPedido, payload), "Comprobante: B-000007")
	assert.Contains(t, svc.Render(enum.DocumentAgregados, payload), "AGREGADOS")
	assert.Contains(t, svc.Render(enum.DocumentEliminados, payload), "ELIMINADOS")
	assert.Contains(t, svc.Render(enum.DocumentDelivery, payload), "DELIVERY")
}

func TestRelayEndpointsRequireRemoteTarget(t *testing.T) {
	repo := newFakeTargetRepo()
	svc := newPrintService(repo, &recordingPrinter{})
	ctx := context.Background()

	local := localTarget("caja", []string{"counter"}, []string{"pedido"})
	require.NoError(t, repo.Create(ctx, local))

	_, err := svc.RelayHealth(ctx, local.ID)
	assert.Error(t, err)

	_, err = svc.RelayPrinters(ctx, 999)
	assert.Error(t, err)
}
