package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by
// the reconciler.
type PaymentFacade interface {
	OrdersAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error)
	CheckPayment(ctx context.Context, intentID string) error
	PaymentConfigured() bool
}

// PaymentReconciler sweeps orders whose webhook never arrived and re-checks
// their payment intents directly against the processor.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	minAge       time.Duration
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize int, minAge time.Duration, logger *slog.Logger) *PaymentReconciler {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		minAge:       minAge,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize),
	}
}

// Start launches background processing. Without processor credentials the
// sweep has nothing to check, so it stays idle.
func (p *PaymentReconciler) Start(ctx context.Context) {
	if !p.facade.PaymentConfigured() {
		p.logger.Info("payment reconciler idle, processor not configured")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.worker(runCtx)

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for the sweep to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	cutoff := time.Now().Add(-p.minAge)
	orders, err := p.facade.OrdersAwaitingPayment(ctx, cutoff, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders awaiting payment failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *PaymentReconciler) handleOrder(ctx context.Context, order model.Order) {
	if order.PaymentIntentID == nil {
		return
	}
	if err := p.facade.CheckPayment(ctx, *order.PaymentIntentID); err != nil {
		var apiErr *stripe.APIError
		if errors.As(err, &apiErr) {
			p.logger.Warn("processor rejected intent lookup",
				slog.String("order", order.Number),
				slog.Int("status", apiErr.StatusCode),
				slog.String("message", apiErr.Message),
			)
			return
		}
		p.logger.Error("payment check failed", slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}
