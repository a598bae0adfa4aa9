// Package payment holds the simulated payment collaborator. There is no real
// gateway: an order placed here settles after a fixed delay with a
// configurable success rate. The settlement state machine itself lives in the
// service layer and only ever receives a decided outcome.
package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettleFunc resolves an order's pending payment with a decided outcome.
type SettleFunc func(ctx context.Context, orderID uuid.UUID, outcome model.PaymentStatus) error

// Simulator produces settlement outcomes for pending orders.
type Simulator struct {
	successRate float64
	delay       time.Duration
	settle      SettleFunc
	logger      zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a payment simulator that invokes settle after the
// configured delay.
func NewSimulator(successRate float64, delay time.Duration, settle SettleFunc, logger zerolog.Logger) *Simulator {
	return &Simulator{
		successRate: successRate,
		delay:       delay,
		settle:      settle,
		logger:      logger.With().Str("component", "payment-simulator").Logger(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Outcome draws a settlement outcome at the configured success rate.
func (s *Simulator) Outcome() model.PaymentStatus {
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll < s.successRate {
		return model.PaymentSuccess
	}
	return model.PaymentFailed
}

// Schedule settles the order in the background after the configured delay.
// Settlement runs with its own context: the originating request finishing
// must not cancel a payment already in flight.
func (s *Simulator) Schedule(orderID uuid.UUID) {
	go func() {
		time.Sleep(s.delay)

		outcome := s.Outcome()
		s.logger.Info().
			Str("order_id", orderID.String()).
			Str("outcome", string(outcome)).
			Msg("simulated payment resolved")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.settle(ctx, orderID, outcome); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Msg("failed to settle simulated payment")
		}
	}()
}
