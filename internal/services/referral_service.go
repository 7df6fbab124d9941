package services

import (
	"encoding/base64"
	"log/slog"
	"sync"
	"unicode/utf8"
)

// ReferralService tracks the referral captured for each session. A code is a
// base64 encoding of the referrer's identity key; an undecodable code is
// dropped silently. Each captured referral is redeemed at most once.
type ReferralService struct {
	mu       sync.Mutex
	pending  map[string]string
	redeemed map[string]bool
	logger   *slog.Logger
}

func NewReferralService(logger *slog.Logger) *ReferralService {
	return &ReferralService{
		pending:  make(map[string]string),
		redeemed: make(map[string]bool),
		logger:   logger,
	}
}

// EncodeCode builds the share code for a referrer's identity key.
func EncodeCode(referrerKey string) string {
	return base64.URLEncoding.EncodeToString([]byte(referrerKey))
}

func decodeCode(code string) (string, bool) {

	raw, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(code)
	}

	if err != nil || len(raw) == 0 || !utf8.Valid(raw) {
		return "", false
	}

	return string(raw), true
}

// Capture records an incoming referral for the session. Later captures
// overwrite earlier ones until the referral is redeemed.
func (s *ReferralService) Capture(sessionID, code string) {

	referrer, ok := decodeCode(code)
	if !ok {
		s.logger.Info("Ignoring malformed referral code", slog.String("session_id", sessionID))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redeemed[sessionID] {
		return
	}

	s.pending[sessionID] = referrer

	s.logger.Info("Referral captured",
		slog.String("session_id", sessionID),
		slog.String("referrer", referrer))
}

func (s *ReferralService) Pending(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	referrer, ok := s.pending[sessionID]

	return referrer, ok
}

// Redeem consumes the session's pending referral. A second call for the same
// session finds nothing; the referrer is credited once per referred session.
func (s *ReferralService) Redeem(sessionID string) (string, bool) {

	s.mu.Lock()
	defer s.mu.Unlock()

	referrer, ok := s.pending[sessionID]
	if !ok {
		return "", false
	}

	delete(s.pending, sessionID)
	s.redeemed[sessionID] = true

	return referrer, true
}

// EndSession forgets everything recorded for the session.
func (s *ReferralService) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, sessionID)
	delete(s.redeemed, sessionID)
}
