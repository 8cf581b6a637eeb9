package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
)

// expirySkew refreshes tokens slightly before their actual deadline so an
// in-flight request doesn't race the expiry.
const expirySkew = 30 * time.Second

// Guard holds the authenticated session and gates every screen behind it.
// It is constructed once per process and handed to screen controllers; it
// also implements rest.AuthProvider for the authenticated transport.
type Guard struct {
	api      *rest.Client
	authed   *rest.Client
	store    Store
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	current *Session
	loaded  bool
}

// NewGuard builds a session guard. The provided client must be the
// unauthenticated transport; the guard derives its own authenticated clone
// for profile calls.
func NewGuard(api *rest.Client, store Store, logg *logger.Logger) (*Guard, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	g := &Guard{
		api:      api,
		store:    store,
		logg:     logg,
		validate: validator.New(),
		now:      time.Now,
	}
	g.authed = api.WithAuth(g)
	return g, nil
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type profileResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	Role      enums.Role `json:"role"`
	Phone     string     `json:"phone"`
}

// Current returns the persisted session, nil when nobody is logged in.
func (g *Guard) Current(ctx context.Context) *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loadLocked(ctx)
}

// Login exchanges credentials for tokens, fetches the profile, and persists
// the session. Nothing is written until both calls succeed.
func (g *Guard) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := g.validate.Struct(loginInput{Username: username, Password: password}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "usuario y contraseña son obligatorios")
	}

	var tokens tokenPairResponse
	err := g.api.Post(ctx, "/token/", map[string]string{
		"username": username,
		"password": password,
	}, &tokens)
	if err != nil {
		return nil, err
	}

	var profile profileResponse
	bootstrap := g.api.WithAuth(staticToken(tokens.Access))
	if err := bootstrap.Get(ctx, "/users/profile/", nil, &profile); err != nil {
		return nil, err
	}
	if !profile.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("perfil con rol desconocido %q", profile.Role))
	}

	sess := &Session{
		UserID:       profile.ID,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Email:        profile.Email,
		Role:         profile.Role,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo guardar la sesión")
	}
	g.current = sess
	g.loaded = true

	g.logg.Info(g.logg.WithUsername(ctx, sess.Username), "session started")
	return sess, nil
}

// Logout clears the persisted session unconditionally. No network call is
// needed for it to succeed.
func (g *Guard) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clearLocked(ctx)
}

// IsAdmin reports whether the current session has the admin role; false,
// not an error, when nobody is logged in.
func (g *Guard) IsAdmin(ctx context.Context) bool {
	return g.Current(ctx).IsAdmin()
}

// Authorize gates a screen render. RedirectLogin when no session exists,
// RedirectHome when admin is required but the session is not an admin.
func (g *Guard) Authorize(ctx context.Context, requireAdmin bool) Decision {
	sess := g.Current(ctx)
	if sess == nil {
		return DecisionRedirectLogin
	}
	if requireAdmin && !sess.IsAdmin() {
		return DecisionRedirectHome
	}
	return DecisionAllow
}

// ChangePassword updates the logged-in user's password through the API.
func (g *Guard) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if newPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "la nueva contraseña es obligatoria")
	}
	return g.authed.Post(ctx, "/users/change_password/", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}, nil)
}

// AuthedClient returns the transport that authenticates through this guard.
func (g *Guard) AuthedClient() *rest.Client {
	return g.authed
}

// AccessToken implements rest.AuthProvider. An expired token is refreshed
// proactively; if that fails the request goes out unauthenticated and the
// server stays authoritative.
func (g *Guard) AccessToken(ctx context.Context) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.loadLocked(ctx)
	if sess == nil {
		return "", false
	}
	if tokenExpired(sess.AccessToken, g.now()) {
		if err := g.refreshLocked(ctx, sess); err != nil {
			return "", false
		}
		sess = g.current
	}
	return sess.AccessToken, true
}

// Refresh implements rest.AuthProvider: one refresh attempt; failure clears
// the session so no second attempt can loop.
func (g *Guard) Refresh(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.loadLocked(ctx)
	if sess == nil {
		return pkgerrors.New(pkgerrors.CodeSessionExpired, "")
	}
	return g.refreshLocked(ctx, sess)
}

func (g *Guard) refreshLocked(ctx context.Context, sess *Session) error {
	var out struct {
		Access string `json:"access"`
	}
	err := g.api.Post(ctx, "/token/refresh/", map[string]string{
		"refresh": sess.RefreshToken,
	}, &out)
	if err != nil {
		g.logg.Warn(ctx, "token refresh failed, clearing session")
		if clearErr := g.clearLocked(ctx); clearErr != nil {
			g.logg.Error(ctx, "failed to clear session after refresh failure", clearErr)
		}
		return err
	}

	sess.AccessToken = out.Access
	if err := g.store.Save(ctx, sess); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no se pudo guardar la sesión")
	}
	g.current = sess
	g.loaded = true
	return nil
}

// loadLocked reads the persisted session, caching only its presence. An
// absent session is re-read every time so a login on another terminal
// sharing the store becomes visible.
func (g *Guard) loadLocked(ctx context.Context) *Session {
	if g.loaded {
		return g.current
	}
	sess, err := g.store.Load(ctx)
	if err != nil {
		g.logg.Error(ctx, "failed to load persisted session", err)
		return nil
	}
	g.current = sess
	g.loaded = sess != nil
	return sess
}

// Invalidate implements rest.AuthProvider: the server rejected a freshly
// refreshed token, so the session cannot be trusted anymore.
func (g *Guard) Invalidate(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.clearLocked(ctx); err != nil {
		g.logg.Error(ctx, "failed to clear rejected session", err)
	}
}

// clearLocked drops the in-memory session and the persisted one. Absence is
// never cached so a later login on a terminal sharing the store shows up.
func (g *Guard) clearLocked(ctx context.Context) error {
	g.current = nil
	g.loaded = false
	return g.store.Clear(ctx)
}

// staticToken authenticates with a fixed token and never refreshes. Used
// only to fetch the profile between token issuance and session persistence.
type staticToken string

func (s staticToken) AccessToken(ctx context.Context) (string, bool) {
	return string(s), s != ""
}

func (s staticToken) Refresh(ctx context.Context) error {
	return pkgerrors.New(pkgerrors.CodeSessionExpired, "")
}

func (s staticToken) Invalidate(ctx context.Context) {}

func tokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time.Add(-expirySkew))
}
