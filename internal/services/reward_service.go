package services

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/storage"
)

// RewardService keeps per-user point balances. Balances never go below zero,
// and crediting without a signed-in target is dropped with a log line instead
// of an error; reward writes must never fail a purchase.
type RewardService struct {
	store        storage.Store
	resolver     IdentityResolver
	pollInterval time.Duration
	logger       *slog.Logger

	mu          sync.Mutex
	subscribers []func(models.RewardBalance)
	lastUserID  string
	lastPoints  int
}

func NewRewardService(store storage.Store, resolver IdentityResolver, pollInterval time.Duration, logger *slog.Logger) *RewardService {
	return &RewardService{
		store:        store,
		resolver:     resolver,
		pollInterval: pollInterval,
		logger:       logger,
		lastPoints:   -1,
	}
}

func (s *RewardService) Balance(ctx context.Context, userID string) (int, error) {

	value, exists, err := s.store.Get(ctx, storage.RewardsKey(userID))
	if err != nil {
		return 0, apperrors.StorageError("failed to load the reward balance").WithError(err)
	}

	if !exists {
		return 0, nil
	}

	points, err := strconv.Atoi(value)
	if err != nil {
		s.logger.Warn("Stored reward balance is not a number, treating as zero",
			slog.String("user_id", userID), slog.String("value", value))

		return 0, nil
	}

	return points, nil
}

// AddPoints credits (or with a negative delta, debits) a user's balance. The
// result is floored at zero.
func (s *RewardService) AddPoints(ctx context.Context, identity *models.Identity, delta int) (int, error) {

	if identity.IsAnonymous() {
		s.logger.Info("Reward credit skipped, no signed-in target", slog.Int("delta", delta))
		return 0, nil
	}

	current, err := s.Balance(ctx, identity.Key)
	if err != nil {
		return 0, err
	}

	points := current + delta
	if points < 0 {
		points = 0
	}

	if err := s.store.Set(ctx, storage.RewardsKey(identity.Key), strconv.Itoa(points)); err != nil {
		return 0, apperrors.StorageError("failed to save the reward balance").WithError(err)
	}

	s.logger.Info("Reward balance updated",
		slog.String("user_id", identity.Key),
		slog.Int("delta", delta),
		slog.Int("points", points))

	s.notify(models.RewardBalance{UserID: identity.Key, Points: points})

	return points, nil
}

// Subscribe registers an observer for balance changes seen by this process,
// whether from a local credit or picked up by the watcher.
func (s *RewardService) Subscribe(fn func(models.RewardBalance)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

func (s *RewardService) notify(balance models.RewardBalance) {
	s.mu.Lock()
	subscribers := make([]func(models.RewardBalance), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.lastUserID = balance.UserID
	s.lastPoints = balance.Points
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(balance)
	}
}

// Start runs the balance watcher until the context is cancelled. It polls the
// resolver so a login, logout or credit performed by another instance shows up
// without any push channel.
func (s *RewardService) Start(ctx context.Context) {

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.logger.Info("Reward balance watcher started", slog.Duration("interval", s.pollInterval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reward balance watcher stopped")
			return

		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *RewardService) poll(ctx context.Context) {

	identity := s.resolver.CurrentIdentity(ctx)

	if identity.IsAnonymous() {
		s.mu.Lock()
		changed := s.lastUserID != ""
		s.lastUserID = ""
		s.lastPoints = -1
		s.mu.Unlock()

		if changed {
			s.notify(models.RewardBalance{})
		}

		return
	}

	points, err := s.Balance(ctx, identity.Key)
	if err != nil {
		s.logger.Warn("Reward watcher failed to read the balance", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	changed := identity.Key != s.lastUserID || points != s.lastPoints
	s.mu.Unlock()

	if changed {
		s.notify(models.RewardBalance{UserID: identity.Key, Points: points})
	}
}
