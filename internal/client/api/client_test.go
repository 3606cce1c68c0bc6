package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"blogsphere/internal/client/session"
	"blogsphere/internal/envelope"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newAuth() (*session.Auth, *session.TokenStore) {
	store := session.NewTokenStore(session.NewMemoryKV(), nil)
	return session.NewAuth(store), store
}

func TestClient_BearerHeader(t *testing.T) {
	var gotHeader []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Values("Authorization")
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "ok", "pong"))
	}))
	defer srv.Close()

	auth, _ := newAuth()
	c, err := New(srv.URL, WithSession(auth))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Empty(t, gotHeader, "no header without a token")

	// Token is read at call time, not when the client was built.
	auth.Login("tok123", session.User{ID: "u1"})
	_, err = c.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer tok123"}, gotHeader)

	auth.Logout()
	_, err = c.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}

func TestClient_UnauthorizedClearsSessionAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "token expired", "INVALID_TOKEN"))
	}))
	defer srv.Close()

	auth, store := newAuth()
	auth.Login("tok123", session.User{ID: "u1"})

	var fired int32
	var sawClearedStore bool
	c, err := New(srv.URL, WithSession(auth), WithExpiryNotifier(func() {
		atomic.AddInt32(&fired, 1)
		token, _ := store.Read()
		sawClearedStore = token == ""
	}))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/users/me")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Equal(t, "INVALID_TOKEN", apiErr.Code)

	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.True(t, sawClearedStore, "store is cleared before the notifier runs")
	token, user := store.Read()
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.Equal(t, session.Anonymous, auth.State())
}

func TestClient_UnauthorizedWithoutNotifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth, _ := newAuth()
	auth.Login("tok", session.User{ID: "u1"})
	c, err := New(srv.URL, WithSession(auth), WithExpiryNotifier(nil))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = c.Get(context.Background(), "/x")
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, session.Anonymous, auth.State())
}

func TestClient_OtherFailuresLeaveSessionAlone(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
	}
	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeJSON(w, status, envelope.Fail(status, "nope", ""))
			}))
			defer srv.Close()

			auth, store := newAuth()
			auth.Login("tok", session.User{ID: "u1"})
			var fired bool
			c, err := New(srv.URL, WithSession(auth), WithExpiryNotifier(func() { fired = true }))
			require.NoError(t, err)

			_, err = c.Post(context.Background(), "/blogs", map[string]string{"title": "t"})

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, status, apiErr.StatusCode)
			assert.NotErrorIs(t, err, ErrUnauthorized)
			assert.False(t, fired)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
			token, _ := store.Read()
			assert.Equal(t, "tok", token)
		})
	}
}

func TestClient_ErrorIsMatchesStatus(t *testing.T) {
	assert.ErrorIs(t, &Error{StatusCode: http.StatusForbidden}, ErrForbidden)
	assert.ErrorIs(t, &Error{StatusCode: http.StatusNotFound}, ErrNotFound)
	assert.NotErrorIs(t, &Error{StatusCode: http.StatusNotFound}, ErrForbidden)
	assert.Equal(t, "404 BLOG_NOT_FOUND: blog not found",
		(&Error{StatusCode: 404, Code: "BLOG_NOT_FOUND", Message: "blog not found"}).Error())
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/x")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_NetworkErrorReturnedAsIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	auth, store := newAuth()
	auth.Login("tok", session.User{ID: "u1"})
	var fired bool
	c, err := New(base, WithSession(auth), WithExpiryNotifier(func() { fired = true }))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/x")
	require.Error(t, err)

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, fired)
	token, _ := store.Read()
	assert.Equal(t, "tok", token)
}

func TestClient_LoginExpiryLogoutScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "expired", "INVALID_TOKEN"))
	}))
	defer srv.Close()

	kv := session.NewMemoryKV()
	store := session.NewTokenStore(kv, nil)
	auth := session.NewAuth(store)

	var fired int
	c, err := New(srv.URL, WithSession(auth), WithExpiryNotifier(func() { fired++ }))
	require.NoError(t, err)

	auth.Login("tok123", session.User{ID: "u1"})
	token, user := store.Read()
	assert.Equal(t, "tok123", token)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	_, err = c.Get(context.Background(), "/users/me")
	assert.ErrorIs(t, err, ErrUnauthorized)
	token, user = store.Read()
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.Equal(t, 1, fired)

	assert.NotPanics(t, auth.Logout)
	_, ok, _ := kv.Get(session.KeyToken)
	assert.False(t, ok)
	assert.Equal(t, 1, fired)
}

func TestClient_TokenStoreAsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer raw", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := session.NewTokenStore(session.NewMemoryKV(), nil)
	store.Save("raw", &session.User{ID: "u1"}, 0)

	c, err := New(srv.URL, WithSession(store))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/x")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.Token())
}

func TestClient_BodyEncodedAsIs(t *testing.T) {
	var got map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusCreated, envelope.OK(http.StatusCreated, "created", map[string]string{"id": "b1"}))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/")
	require.NoError(t, err)

	raw, err := c.Post(context.Background(), "/anything", map[string]any{"unexpected": true, "n": 3})
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{"unexpected": true, "n": float64(3)}, got)
	assert.Equal(t, http.StatusCreated, raw.StatusCode)
	assert.Equal(t, "created", raw.Message)

	res, err := Into[map[string]string](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "b1", res.Data["id"])
}

func TestClient_EmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	raw, err := c.Delete(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, raw.StatusCode)
}

func TestInto_PropagatesError(t *testing.T) {
	want := &Error{StatusCode: 500, Message: "boom"}
	_, err := Into[Blog](Raw{}, want)
	assert.Same(t, want, err)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

type recordingTracer struct {
	noop.Tracer
	names *[]string
}

func (r recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	*r.names = append(*r.names, name)
	return r.Tracer.Start(ctx, name, opts...)
}

type recordingProvider struct {
	noop.TracerProvider
	tracer recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

func TestClient_SpanPerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "ok", []string{}))
	}))
	defer srv.Close()

	var names []string
	tp := recordingProvider{tracer: recordingTracer{names: &names}}
	c, err := New(srv.URL, WithTracerProvider(tp))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/blogs?page=2")
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "/blogs/b1")
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /blogs", "DELETE /blogs/b1"}, names)
}

func TestClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing/content") {
			writeJSON(w, http.StatusNotFound, envelope.Fail(http.StatusNotFound, "photo not found", "PHOTO_NOT_FOUND"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = io.WriteString(w, "PNGDATA")
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	var buf strings.Builder
	n, err := c.PhotoContent(context.Background(), "p1", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "PNGDATA", buf.String())

	_, err = c.PhotoContent(context.Background(), "missing", &buf)
	assert.ErrorIs(t, err, ErrNotFound)
}
