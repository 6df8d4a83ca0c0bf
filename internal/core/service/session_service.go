package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/pkg/metrics"
)

// SessionService is the single writer of the session and the stored token.
// writeMu serialises mutations; mu guards the state and is never held across
// a backend call, so the request layer's 401 hook can always take it.
type SessionService struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore
	logger zerolog.Logger
	now    func() time.Time

	writeMu sync.Mutex

	mu      sync.RWMutex
	user    *domain.User
	loading bool
	subs    map[int]chan domain.Session
	nextSub int
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(auth ports.AuthAPI, tokens ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		auth:    auth,
		tokens:  tokens,
		logger:  logger,
		now:     time.Now,
		loading: true,
		subs:    make(map[int]chan domain.Session),
	}
}

// Initialize restores the session from the persisted token. It always ends
// with loading cleared, whatever happens.
func (s *SessionService) Initialize(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not read stored token, starting logged out")
		s.set(nil)
		return
	}
	if token == "" {
		s.set(nil)
		return
	}

	if s.tokenExpired(token) {
		s.logger.Info().Msg("stored token has expired, clearing it")
		s.clearToken(ctx)
		metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
		s.set(nil)
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored token rejected, starting logged out")
		s.clearToken(ctx)
		s.set(nil)
		return
	}

	metrics.SessionEventsTotal.WithLabelValues("restored").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	s.set(user)
}

func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		if isVerificationError(err) {
			return s.Snapshot(), fmt.Errorf("%w: %v", domain.ErrVerificationRequired, err)
		}
		return s.Snapshot(), fmt.Errorf("login: %w", err)
	}
	if res.AccessToken == "" {
		metrics.SessionEventsTotal.WithLabelValues("verification_required").Inc()
		return s.Snapshot(), domain.ErrVerificationRequired
	}

	user, err := s.establish(ctx, res)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("login: %w", err)
	}

	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("logged in")
	return s.Snapshot(), nil
}

// Signup creates the account. Without a token in the response the account
// awaits email verification and nothing local changes.
func (s *SessionService) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.auth.Signup(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if res.AccessToken == "" {
		metrics.SessionEventsTotal.WithLabelValues("verification_required").Inc()
		s.logger.Info().Str("email", in.Email).Msg("signup awaiting email verification")
		return &ports.SignupResult{Session: s.Snapshot(), VerificationRequired: true}, nil
	}

	user, err := s.establish(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SessionEventsTotal.WithLabelValues("signup").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("signed up")
	return &ports.SignupResult{Session: s.Snapshot()}, nil
}

// Logout invalidates the server session on a best-effort basis; the local
// session is cleared regardless.
func (s *SessionService) Logout(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	s.clearToken(ctx)
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	s.set(nil)
}

// Refresh re-fetches the profile. Any failure degrades to logged out.
func (s *SessionService) Refresh(ctx context.Context) (domain.Session, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session refresh failed, logging out")
		s.clearToken(ctx)
		s.set(nil)
		return s.Snapshot(), fmt.Errorf("refresh session: %w", err)
	}
	s.set(user)
	return s.Snapshot(), nil
}

// HandleUnauthorized drops the identity after the request layer saw a 401
// and cleared the token. It only touches state, never the writer lock.
func (s *SessionService) HandleUnauthorized() {
	s.mu.RLock()
	had := s.user != nil
	s.mu.RUnlock()
	if !had {
		return
	}
	metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
	s.logger.Info().Msg("backend rejected the token, session cleared")
	s.set(nil)
}

func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest snapshot; a slow
// reader only ever misses intermediate values.
func (s *SessionService) Subscribe() (<-chan domain.Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.Session, 1)
	ch <- s.snapshotLocked()
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// establish stores the token and resolves the identity, fetching the
// profile when the auth response did not carry one.
func (s *SessionService) establish(ctx context.Context, res *ports.AuthResult) (*domain.User, error) {
	if err := s.tokens.Save(ctx, res.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	user := res.User
	if user == nil {
		var err error
		user, err = s.auth.Me(ctx)
		if err != nil {
			s.clearToken(ctx)
			s.set(nil)
			return nil, fmt.Errorf("fetch profile: %w", err)
		}
	}
	s.set(user)
	return user, nil
}

func (s *SessionService) set(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user.Clone()
	s.loading = false

	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *SessionService) snapshotLocked() domain.Session {
	return domain.Session{User: s.user.Clone(), IsLoading: s.loading}
}

func (s *SessionService) clearToken(ctx context.Context) {
	if err := s.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear stored token")
	}
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs, or carry no exp, are left for the backend to judge.
func (s *SessionService) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

func isVerificationError(err error) bool {
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Status == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(be.Message), "verif")
}
