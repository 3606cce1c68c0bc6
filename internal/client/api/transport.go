package api

import "net/http"

// TokenSource yields the current bearer token, or "" when there is none.
type TokenSource interface {
	Token() string
}

// Invalidator drops the local session after the server rejected it.
type Invalidator interface {
	Expire()
}

// Session is both a token source and an invalidation target.
type Session interface {
	TokenSource
	Invalidator
}

// bearerTransport attaches the token read at request time.
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.next.RoundTrip(req)
	}
	token := t.tokens.Token()
	if token == "" {
		return t.next.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(r)
}

// expiryTransport invalidates the session and fires the notifier on 401.
// The response itself is returned untouched.
type expiryTransport struct {
	session  Invalidator
	notifier func()
	next     http.RoundTripper
}

func (t *expiryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.expire()
	}
	return resp, nil
}

func (t *expiryTransport) expire() {
	if t.session != nil {
		t.session.Expire()
	}
	if t.notifier != nil {
		t.notifier()
	}
}
