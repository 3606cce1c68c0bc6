package session

import (
	"sync"
	"time"
)

// State is the authentication state of an Auth context.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is a snapshot of the Auth context.
type Session struct {
	Token           string
	User            *User
	IsAuthenticated bool
}

// UserPatch carries profile fields to merge; nil fields are left alone.
type UserPatch struct {
	UserName    *string `json:"userName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Banner      *string `json:"banner,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Empty reports whether p changes nothing.
func (p UserPatch) Empty() bool {
	return p.UserName == nil && p.Avatar == nil && p.Banner == nil && p.Description == nil
}

func (p UserPatch) apply(u *User) {
	if p.UserName != nil {
		u.UserName = *p.UserName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Banner != nil {
		u.Banner = *p.Banner
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
}

// Auth is the process-wide session context. It mirrors the TokenStore in
// memory and is safe for concurrent use. Liveness always comes from the
// store: once the stored token is gone or expired the context is Anonymous,
// whatever it held before.
type Auth struct {
	mu    sync.Mutex
	store *TokenStore
	token string
	user  *User
}

// NewAuth derives the initial state from store.
func NewAuth(store *TokenStore) *Auth {
	a := &Auth{store: store}
	a.Refresh()
	return a
}

// Login replaces the session and persists it with DefaultTTL.
func (a *Auth) Login(token string, user User) Session {
	return a.LoginWithTTL(token, user, DefaultTTL)
}

// LoginWithTTL is Login with an explicit expiry.
func (a *Auth) LoginWithTTL(token string, user User, ttl time.Duration) Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Save(token, &user, ttl)
	a.token = token
	a.user = &user
	return a.snapshot()
}

// Logout clears the session. It does nothing when neither memory nor the
// store holds a live token.
func (a *Auth) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token == "" && a.store.Token() == "" {
		return
	}
	a.store.Clear()
	a.reset()
}

// Expire clears the store and forces the context to Anonymous. It is called
// when the server rejects the token.
func (a *Auth) Expire() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Clear()
	a.reset()
}

// UpdateUser merges patch into the current user and rewrites the stored
// record. It is ignored when Anonymous.
func (a *Auth) UpdateUser(patch UserPatch) Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.live() || a.user == nil {
		return a.snapshot()
	}
	merged := *a.user
	patch.apply(&merged)
	a.user = &merged
	a.store.SaveUser(&merged)
	return a.snapshot()
}

// SetUser replaces the user record wholesale, keeping the token. It is
// ignored when Anonymous.
func (a *Auth) SetUser(user User) Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.live() {
		return a.snapshot()
	}
	a.user = &user
	a.store.SaveUser(&user)
	return a.snapshot()
}

// Refresh re-reads the store and returns the resulting session.
func (a *Auth) Refresh() Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	token, user := a.store.Read()
	a.token = token
	a.user = user
	if token == "" {
		a.user = nil
	}
	return a.snapshot()
}

// Current returns a snapshot of the context after checking that the stored
// token is still live.
func (a *Auth) Current() Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.live()
	return a.snapshot()
}

func (a *Auth) State() State {
	if a.Current().IsAuthenticated {
		return Authenticated
	}
	return Anonymous
}

// Token reads the token from the store at call time.
func (a *Auth) Token() string {
	return a.store.Token()
}

// live reports whether the context holds a token the store still has.
// An expired or cleared store token resets the context. Callers hold a.mu.
func (a *Auth) live() bool {
	if a.token == "" {
		return false
	}
	if a.store.Token() == "" {
		a.reset()
		return false
	}
	return true
}

func (a *Auth) reset() {
	a.token = ""
	a.user = nil
}

func (a *Auth) snapshot() Session {
	s := Session{Token: a.token, IsAuthenticated: a.token != ""}
	if a.user != nil {
		u := *a.user
		s.User = &u
	}
	return s
}
