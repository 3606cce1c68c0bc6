package session

import (
	"encoding/json"
	"time"

	"blogsphere/internal/logger"
)

const (
	KeyToken = "token"
	KeyUser  = "user"

	// DefaultTTL is how long a saved session stays valid.
	DefaultTTL = 24 * time.Hour
)

// User is the client-side projection of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	UserName    string `json:"userName"`
	Avatar      string `json:"avatar,omitempty"`
	Banner      string `json:"banner,omitempty"`
	Code        int    `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
}

// TokenStore persists the bearer token and user record with a shared expiry.
// It never returns errors: failures are logged and reads degrade to absent.
type TokenStore struct {
	kv  KV
	log *logger.Logger
	now func() time.Time
}

func NewTokenStore(kv KV, log *logger.Logger) *TokenStore {
	if log == nil {
		log = logger.Nop()
	}
	return &TokenStore{kv: kv, log: log, now: time.Now}
}

// Save writes token and user under one expiry. A non-positive ttl uses DefaultTTL.
func (s *TokenStore) Save(token string, user *User, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := s.now().Add(ttl)

	entries := map[string]Entry{
		KeyToken: {Value: token, ExpiresAt: expiresAt},
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			s.log.Warn("encode session user", "error", err)
		} else {
			entries[KeyUser] = Entry{Value: string(raw), ExpiresAt: expiresAt}
		}
	}

	if err := s.kv.Put(entries); err != nil {
		s.log.Warn("save session", "error", err)
	}
}

// SaveUser rewrites the user record, keeping the token's expiry.
// Nothing is written when no live token is stored.
func (s *TokenStore) SaveUser(user *User) {
	tok, ok := s.entry(KeyToken)
	if !ok || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("encode session user", "error", err)
		return
	}
	if err := s.kv.Put(map[string]Entry{KeyUser: {Value: string(raw), ExpiresAt: tok.ExpiresAt}}); err != nil {
		s.log.Warn("save session user", "error", err)
	}
}

// Read returns the stored token and user, or empties when absent or expired.
// Expiry is evaluated on every call.
func (s *TokenStore) Read() (string, *User) {
	return s.Token(), s.User()
}

// Token returns the live token or "".
func (s *TokenStore) Token() string {
	e, ok := s.entry(KeyToken)
	if !ok {
		return ""
	}
	return e.Value
}

// User returns the live user record or nil. A record that fails to decode
// is treated as absent.
func (s *TokenStore) User() *User {
	e, ok := s.entry(KeyUser)
	if !ok {
		return nil
	}
	var u User
	if err := json.Unmarshal([]byte(e.Value), &u); err != nil {
		s.log.Warn("decode session user", "error", err)
		return nil
	}
	return &u
}

// Clear removes both keys.
func (s *TokenStore) Clear() {
	if err := s.kv.Delete(KeyToken, KeyUser); err != nil {
		s.log.Warn("clear session", "error", err)
	}
}

// Expire clears the store. It lets a bare TokenStore act as the invalidation
// target of the API client.
func (s *TokenStore) Expire() {
	s.Clear()
}

func (s *TokenStore) entry(key string) (Entry, bool) {
	e, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("read session", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok || e.Expired(s.now()) {
		return Entry{}, false
	}
	return e, true
}
