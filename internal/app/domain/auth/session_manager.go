package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// Observer receives every login/logout transition.
type Observer func(models.Session)

// SessionManager owns the stub login flows and an explicit observer
// registry. Every variant produces a session after a simulated provider
// delay; logout broadcasts the anonymous session.
type SessionManager struct {
	mu          sync.Mutex
	credentials map[string]credential
	observers   map[int]Observer
	nextID      int

	delay  time.Duration
	logger *zap.Logger
}

type credential struct {
	uid          string
	displayName  string
	passwordHash []byte
}

func NewSessionManager(delay time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		credentials: make(map[string]credential),
		observers:   make(map[int]Observer),
		delay:       delay,
		logger:      logger,
	}
}

// Subscribe registers an observer for session changes and returns its
// unsubscribe function. Unsubscribe is deterministic: after it returns
// the observer is never called again.
func (m *SessionManager) Subscribe(fn Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

func (m *SessionManager) notify(session models.Session) {
	m.mu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}

// LoginWithEmail validates the credential format, verifies the password
// against the stored hash when the account is known, and creates the
// account on first use otherwise.
func (m *SessionManager) LoginWithEmail(ctx context.Context, email, password string) (models.Session, error) {
	l := m.logger.With(zap.String("method", "LoginWithEmail"), zap.String("email", email))

	if !strings.Contains(email, "@") {
		return models.Anonymous(), fmt.Errorf("%w: invalid email address", models.ErrValidation)
	}
	if len(password) < 6 {
		return models.Anonymous(), fmt.Errorf("%w: password should be at least 6 characters", models.ErrValidation)
	}

	if err := m.simulateProviderDelay(ctx); err != nil {
		return models.Anonymous(), err
	}

	name := strings.SplitN(email, "@", 2)[0]

	m.mu.Lock()
	cred, known := m.credentials[email]
	if !known {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			m.mu.Unlock()
			l.Error("Failed to hash password", zap.Error(err))
			return models.Anonymous(), fmt.Errorf("could not process password")
		}
		cred = credential{
			uid:          "user-" + uuid.NewString(),
			displayName:  name,
			passwordHash: hash,
		}
		m.credentials[email] = cred
	}
	m.mu.Unlock()

	if known {
		if err := bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(password)); err != nil {
			l.Warn("Password comparison failed")
			return models.Anonymous(), fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
		}
	}

	session := models.Session{
		Kind:        models.SessionAuthenticated,
		UID:         cred.uid,
		DisplayName: cred.displayName,
		Email:       email,
		PhotoURL:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random&color=fff", name),
	}

	l.Info("Login successful", zap.String("uid", session.UID))
	m.notify(session)
	return session, nil
}

// RegisterWithEmail mirrors the stub provider: registration and first
// login are the same operation.
func (m *SessionManager) RegisterWithEmail(ctx context.Context, email, password string) (models.Session, error) {
	return m.LoginWithEmail(ctx, email, password)
}

// LoginWithGoogle is a federated-provider stub.
func (m *SessionManager) LoginWithGoogle(ctx context.Context) (models.Session, error) {
	return m.federatedLogin(ctx, "Google User", "https://ui-avatars.com/api/?name=Google+User&background=DB4437&color=fff")
}

// LoginWithMicrosoft is a federated-provider stub.
func (m *SessionManager) LoginWithMicrosoft(ctx context.Context) (models.Session, error) {
	return m.federatedLogin(ctx, "Microsoft User", "https://ui-avatars.com/api/?name=Microsoft+User&background=00A4EF&color=fff")
}

func (m *SessionManager) federatedLogin(ctx context.Context, name, photoURL string) (models.Session, error) {
	if err := m.simulateProviderDelay(ctx); err != nil {
		return models.Anonymous(), err
	}

	session := models.Session{
		Kind:        models.SessionAuthenticated,
		UID:         "user-" + uuid.NewString(),
		DisplayName: name,
		Email:       strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PhotoURL:    photoURL,
	}
	m.logger.Info("Federated login", zap.String("provider", name), zap.String("uid", session.UID))
	m.notify(session)
	return session, nil
}

// LoginAsGuest produces a guest session without credentials.
func (m *SessionManager) LoginAsGuest(ctx context.Context) (models.Session, error) {
	if err := m.simulateProviderDelay(ctx); err != nil {
		return models.Anonymous(), err
	}

	session := models.Session{
		Kind:        models.SessionGuest,
		UID:         "guest-" + uuid.NewString(),
		DisplayName: "Guest Traveler",
	}
	m.notify(session)
	return session, nil
}

// Logout clears the session and notifies observers.
func (m *SessionManager) Logout(uid string) {
	m.logger.Info("Logout", zap.String("uid", uid))
	m.notify(models.Anonymous())
}

func (m *SessionManager) simulateProviderDelay(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
