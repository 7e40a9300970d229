// Package session keeps signed-in admin state in Valkey. The browser only
// holds an opaque random ID in the ca_session cookie; the payload (admin
// identity, the course API token issued at login and one-shot flash
// messages) lives server-side as JSON with an idle expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie sent to the browser.
	CookieName = "ca_session"

	// DefaultTTL is the idle lifetime. Every read pushes expiry forward.
	DefaultTTL = 12 * time.Hour

	keyPrefix = "ca:session:"
	idBytes   = 32
)

// ErrNoSession is returned by Update when the request carries no usable
// session cookie.
var ErrNoSession = errors.New("no session cookie")

// FlashKind selects how a flash message is styled.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Data is the server-side session payload.
type Data struct {
	AdminName string    `json:"admin_name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads and writes sessions in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore returns a Store on client. secure marks the cookie Secure for
// deployments behind TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

func key(id string) string { return keyPrefix + id }

// sessionID returns the cookie value when it has the shape of an ID this
// store issued. Anything else is treated as no session.
func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || len(c.Value) != 2*idBytes {
		return "", false
	}
	if _, err := hex.DecodeString(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// Create saves data under a fresh ID and sets the cookie on w.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	raw := make([]byte, idBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	id := hex.EncodeToString(raw)

	data.CreatedAt = time.Now().UTC()
	if err := s.save(ctx, id, data); err != nil {
		return "", err
	}

	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get loads the session named by the request cookie and slides its
// expiry. A missing, malformed or expired cookie yields (nil, nil).
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, ok := sessionID(r)
	if !ok {
		return nil, nil
	}

	payload, err := s.client.GetEx(ctx, key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Update overwrites the session named by the request cookie.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	id, ok := sessionID(r)
	if !ok {
		return ErrNoSession
	}
	return s.save(ctx, id, data)
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// AddFlash queues msg for the next rendered page. Failures are logged.
func (s *Store) AddFlash(ctx context.Context, r *http.Request, data *Data, kind FlashKind, msg string) {
	if data == nil {
		return
	}
	data.Flashes = append(data.Flashes, Flash{Kind: kind, Message: msg})
	if err := s.Update(ctx, r, data); err != nil {
		slog.Warn("queue flash failed", "error", err)
	}
}

// PopFlashes returns the queued messages and clears them in Valkey.
func (s *Store) PopFlashes(ctx context.Context, r *http.Request, data *Data) []Flash {
	if data == nil || len(data.Flashes) == 0 {
		return nil
	}
	out := data.Flashes
	data.Flashes = nil
	if err := s.Update(ctx, r, data); err != nil {
		slog.Warn("clear flashes failed", "error", err)
	}
	return out
}

// Destroy deletes the session and expires the cookie. Deleting a key
// that is already gone is not an error.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := sessionID(r)
	if !ok {
		return nil
	}
	http.SetCookie(w, s.cookie("", -1))
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
