package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/giftscape-studio/storefront-core/internal/config"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/metrics"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/pkg/sendGrid"
	"github.com/google/uuid"
)

// OrderArchive is the durable sink for confirmed orders.
type OrderArchive interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

type otpChallenge struct {
	sessionID string
	identity  *models.Identity
	code      string
	shipping  models.ShippingInfo
	payment   models.PaymentMethod
	attempts  int
	expiresAt time.Time
}

// CheckoutService runs the order placement flow: quote, optional discount,
// an emailed one-time code, and archival of the confirmed order.
type CheckoutService struct {
	cart      *CartService
	rewards   *RewardService
	referrals *ReferralService
	email     sendGrid.EmailService
	archive   OrderArchive
	cfg       config.Checkout
	logger    *slog.Logger

	mu         sync.Mutex
	discounts  map[string]bool
	challenges map[string]*otpChallenge
}

func NewCheckoutService(
	cart *CartService,
	rewards *RewardService,
	referrals *ReferralService,
	email sendGrid.EmailService,
	archive OrderArchive,
	cfg config.Checkout,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:       cart,
		rewards:    rewards,
		referrals:  referrals,
		email:      email,
		archive:    archive,
		cfg:        cfg,
		logger:     logger,
		discounts:  make(map[string]bool),
		challenges: make(map[string]*otpChallenge),
	}
}

func (s *CheckoutService) Quote(sessionID string) models.CheckoutQuote {

	cart := s.cart.Get(sessionID)

	s.mu.Lock()
	discounted := s.discounts[sessionID]
	s.mu.Unlock()

	return s.quote(&cart, discounted)
}

func (s *CheckoutService) quote(cart *models.Cart, discounted bool) models.CheckoutQuote {

	subtotal := cart.Subtotal()

	if len(cart.Items) == 0 {
		return models.CheckoutQuote{}
	}

	var discount float64
	if discounted {
		discount = round2(subtotal * s.cfg.DiscountRate)
	}

	return models.CheckoutQuote{
		Subtotal: subtotal,
		Shipping: s.cfg.ShippingFee,
		Discount: discount,
		Total:    round2(subtotal + s.cfg.ShippingFee - discount),
	}
}

// ApplyDiscount grants the flat promotional reduction. Any non-empty code
// qualifies; once the discount is on, applying again is a no-op and the
// unchanged quote comes back.
func (s *CheckoutService) ApplyDiscount(sessionID, code string) (models.CheckoutQuote, error) {

	if strings.TrimSpace(code) == "" {
		return models.CheckoutQuote{}, apperrors.BadRequestError("a discount code is required")
	}

	s.mu.Lock()
	s.discounts[sessionID] = true
	s.mu.Unlock()

	return s.Quote(sessionID), nil
}

// Begin validates the cart and shipping details, issues a one-time code and
// emails it to the buyer. The returned challenge id is what Confirm expects.
func (s *CheckoutService) Begin(ctx context.Context, sessionID string, identity *models.Identity, req *models.BeginCheckoutRequest) (string, error) {

	cart := s.cart.Get(sessionID)

	if len(cart.Items) == 0 {
		return "", apperrors.BadRequestError("cannot check out an empty cart")
	}

	challenge := &otpChallenge{
		sessionID: sessionID,
		identity:  identity,
		code:      fmt.Sprintf("%04d", rand.IntN(9000)+1000),
		shipping:  req.ShippingAddress,
		payment:   models.PaymentMethod(req.PaymentMethod),
		expiresAt: time.Now().Add(s.cfg.OTPTTL),
	}

	challengeID := uuid.NewString()

	s.mu.Lock()
	s.challenges[challengeID] = challenge
	s.mu.Unlock()

	notification := &models.EmailNotificationRequest{
		To:      req.ShippingAddress.Email,
		Subject: "Your GiftScape Studio verification code",
		Content: fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nGiftScape Studio",
			req.ShippingAddress.FullName, challenge.code, int(s.cfg.OTPTTL.Minutes())),
	}

	if err := s.email.Send(ctx, notification); err != nil {
		// The code still stands; a dropped email must not strand the session.
		s.logger.Warn("Failed to email the verification code",
			slog.String("challenge_id", challengeID), slog.String("error", err.Error()))
	}

	s.logger.Info("Checkout challenge issued",
		slog.String("session_id", sessionID),
		slog.String("challenge_id", challengeID))

	return challengeID, nil
}

// Confirm checks the one-time code and, on success, archives the order,
// empties the cart, burns the discount and credits any pending referral.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string, req *models.ConfirmCheckoutRequest) (*models.PlacedOrder, error) {

	s.mu.Lock()

	challenge, ok := s.challenges[req.ChallengeID]

	if !ok || challenge.sessionID != sessionID {
		s.mu.Unlock()
		return nil, apperrors.NotFoundError("checkout challenge not found")
	}

	if time.Now().After(challenge.expiresAt) {
		delete(s.challenges, req.ChallengeID)
		s.mu.Unlock()

		return nil, apperrors.OTPExpiredError("the verification code has expired")
	}

	if req.Code != challenge.code {

		challenge.attempts++

		if challenge.attempts >= s.cfg.OTPMaxAttempts {
			delete(s.challenges, req.ChallengeID)
			s.mu.Unlock()

			return nil, apperrors.OTPExpiredError("too many failed attempts, request a new code")
		}

		s.mu.Unlock()

		return nil, apperrors.OTPInvalidError("incorrect verification code")
	}

	delete(s.challenges, req.ChallengeID)
	discounted := s.discounts[sessionID]
	s.mu.Unlock()

	cart := s.cart.Get(sessionID)

	if len(cart.Items) == 0 {
		return nil, apperrors.BadRequestError("cannot check out an empty cart")
	}

	quote := s.quote(&cart, discounted)

	order := &models.Order{
		ID:              fmt.Sprintf("GSS-%05d", rand.IntN(90000)+10000),
		CustomerID:      challenge.shipping.Email,
		Date:            time.Now(),
		Status:          models.OrderStatusProcessing,
		Items:           cart.Items,
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Discount:        quote.Discount,
		Total:           quote.Total,
		PaymentMethod:   challenge.payment,
		ShippingAddress: &challenge.shipping,
	}

	if err := s.archive.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.StorageError("failed to save the order").WithError(err)
	}

	s.cart.Clear(sessionID)

	s.mu.Lock()
	delete(s.discounts, sessionID)
	s.mu.Unlock()

	referralApplied := s.creditReferral(ctx, sessionID)

	s.sendConfirmation(ctx, order)

	metrics.OrderPlaced()

	s.logger.Info("Order placed",
		slog.String("order_id", order.ID),
		slog.String("session_id", sessionID),
		slog.Float64("total", order.Total))

	return &models.PlacedOrder{Order: order, ReferralApplied: referralApplied}, nil
}

// Abandon drops a pending challenge. Nothing else changes; the cart and any
// applied discount stay put for another attempt.
func (s *CheckoutService) Abandon(sessionID, challengeID string) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if challenge, ok := s.challenges[challengeID]; ok && challenge.sessionID == sessionID {
		delete(s.challenges, challengeID)
	}
}

func (s *CheckoutService) creditReferral(ctx context.Context, sessionID string) bool {

	referrer, ok := s.referrals.Redeem(sessionID)
	if !ok {
		return false
	}

	identity := &models.Identity{Key: referrer}

	if _, err := s.rewards.AddPoints(ctx, identity, s.cfg.ReferralBonus); err != nil {
		// The purchase already went through; the missed credit is only logged.
		s.logger.Warn("Failed to credit the referral bonus",
			slog.String("referrer", referrer), slog.String("error", err.Error()))
	}

	return true
}

func (s *CheckoutService) sendConfirmation(ctx context.Context, order *models.Order) {

	notification := &models.EmailNotificationRequest{
		To:      order.ShippingAddress.Email,
		Subject: fmt.Sprintf("Order %s confirmed", order.ID),
		Content: fmt.Sprintf("Hi %s,\n\nThank you for your order %s. Your total is %.2f and your gifts are being prepared.\n\nGiftScape Studio",
			order.ShippingAddress.FullName, order.ID, order.Total),
	}

	if err := s.email.Send(ctx, notification); err != nil {
		s.logger.Warn("Failed to send the order confirmation email",
			slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
