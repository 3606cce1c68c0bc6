package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsphere/internal/client/session"
	"blogsphere/internal/envelope"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, srv *httptest.Server, kv session.KV, stdin string) *harness {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app, err := New(Options{
		APIURL: srv.URL,
		KV:     kv,
		In:     strings.NewReader(stdin),
		Out:    out,
		Err:    errOut,
	})
	require.NoError(t, err)
	return &harness{app: app, out: out, errOut: errOut}
}

func (h *harness) run(args ...string) error {
	root := NewRootCommand(h.app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestLogin_StoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			writeJSON(w, http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "invalid email or password", "INVALID_CREDENTIALS"))
			return
		}
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "login successful", map[string]any{
			"token": "tok123",
			"user":  map[string]any{"id": "u1", "email": body["email"], "userName": "ada"},
		}))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	kv := session.NewMemoryKV()
	h := newHarness(t, srv, kv, "secret1\n")

	require.NoError(t, h.run("login", "ada@example.com"))
	assert.Contains(t, h.out.String(), "Logged in as ada (ada@example.com).")

	token, user := session.NewTokenStore(kv, nil).Read()
	assert.Equal(t, "tok123", token)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_WrongPasswordKeepsAnonymous(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "invalid email or password", "INVALID_CREDENTIALS"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "wrong\n")

	err := h.run("login", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
	assert.Equal(t, session.Anonymous, h.app.Auth.State())
}

func TestLogout(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/logout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, envelope.OK[any](http.StatusOK, "logout successful", nil))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	kv := session.NewMemoryKV()
	h := newHarness(t, srv, kv, "")

	require.NoError(t, h.run("logout"))
	assert.Contains(t, h.out.String(), "Not logged in.")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	h.app.Auth.Login("tok", session.User{ID: "u1"})
	require.NoError(t, h.run("logout"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, session.NewTokenStore(kv, nil).Token())
}

func TestExpiredSessionPromptsForLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, envelope.Fail(http.StatusUnauthorized, "token has been revoked", "INVALID_TOKEN"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	kv := session.NewMemoryKV()
	h := newHarness(t, srv, kv, "")
	h.app.Auth.Login("revoked", session.User{ID: "u1"})

	err := h.run("whoami")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(h.errOut.String(), ExpiredMessage))
	assert.Empty(t, session.NewTokenStore(kv, nil).Token())
	assert.Equal(t, session.Anonymous, h.app.Auth.State())
}

func TestNotLoggedInSkipsServer(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")

	err := h.run("blogs", "create", "--title", "t", "--content", "c")
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.NotContains(t, h.errOut.String(), ExpiredMessage)
}

func TestProfileUpdate_MergesIntoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /users/me", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, map[string]any{"userName": "Rex"}, body)
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "profile updated", map[string]any{"id": "u1", "userName": "Rex"}))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	kv := session.NewMemoryKV()
	h := newHarness(t, srv, kv, "")
	h.app.Auth.Login("tok", session.User{ID: "u1", UserName: "Fido", Description: "good dog"})

	require.NoError(t, h.run("profile", "update", "--username", "Rex"))

	stored := session.NewTokenStore(kv, nil).User()
	require.NotNil(t, stored)
	assert.Equal(t, "Rex", stored.UserName)
	assert.Equal(t, "good dog", stored.Description)
	assert.Contains(t, h.out.String(), "Rex")
}

func TestProfileUpdate_RequiresAFlag(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	h.app.Auth.Login("tok", session.User{ID: "u1"})

	err := h.run("profile", "update")
	assert.ErrorContains(t, err, "nothing to update")
}

func blogsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blogs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "blogs fetched", envelope.Page[map[string]any]{
			Items: []map[string]any{{
				"id":     "b1",
				"title":  "Hello Go",
				"tags":   []string{"go", "intro"},
				"author": map[string]any{"id": "u1", "userName": "ada"},
			}},
			Page:  1,
			Limit: 10,
			Total: 1,
		}))
	})
	return httptest.NewServer(mux)
}

func TestBlogsList(t *testing.T) {
	srv := blogsServer(t)
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	require.NoError(t, h.run("blogs", "list"))

	out := h.out.String()
	assert.Contains(t, out, "Hello Go")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "go,intro")
	assert.Contains(t, out, "page 1, 1 of 1")
}

func TestBlogsList_JSON(t *testing.T) {
	srv := blogsServer(t)
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	require.NoError(t, h.run("--json", "blogs", "list"))

	var page envelope.Page[map[string]any]
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hello Go", page.Items[0]["title"])
}

func TestBlogsCreate_ContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte("# body"), 0o600))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /blogs", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "# body", body["content"])
		assert.Equal(t, []any{"go", "cli"}, body["tags"])
		writeJSON(w, http.StatusCreated, envelope.OK(http.StatusCreated, "blog created", map[string]any{"id": "b9"}))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	h.app.Auth.Login("tok", session.User{ID: "u1"})

	require.NoError(t, h.run("blogs", "create", "--title", "T", "--content", "@"+path, "--tag", "go", "--tag", "cli"))
	assert.Contains(t, h.out.String(), "Blog b9 published.")
}

func TestFollowersDefaultsToMe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/u1/followers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope.OK(http.StatusOK, "followers fetched", []map[string]any{{"id": "u2", "userName": "grace"}}))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	h.app.Auth.Login("tok", session.User{ID: "u1"})

	require.NoError(t, h.run("followers"))
	assert.Contains(t, h.out.String(), "grace")
}

func TestNotificationsRead_NeedsTarget(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h := newHarness(t, srv, session.NewMemoryKV(), "")
	h.app.Auth.Login("tok", session.User{ID: "u1"})

	assert.ErrorContains(t, h.run("notifications", "read"), "--all")
}

func TestNotificationsWatch_StopsWhenSessionCleared(t *testing.T) {
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /notifications/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(map[string]any{"id": "n1", "type": "follow", "message": "grace started following you"})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	kv := session.NewFileKV(path)
	other := session.NewTokenStore(session.NewFileKV(path), nil)
	other.Save("tok", &session.User{ID: "u1"}, time.Hour)

	h := newHarness(t, srv, kv, "")
	require.Equal(t, session.Authenticated, h.app.Auth.State())

	done := make(chan error, 1)
	go func() {
		done <- h.run("notifications", "watch")
	}()

	// Another process logs out; repeat until the watcher is registered and notices.
	var result error
	require.Eventually(t, func() bool {
		other.Save("tok", &session.User{ID: "u1"}, time.Hour)
		other.Clear()
		select {
		case result = <-done:
			return true
		default:
			return false
		}
	}, 10*time.Second, 100*time.Millisecond)

	assert.NoError(t, result)
	assert.Equal(t, session.Anonymous, h.app.Auth.State())
}

func TestPromptPassword_Terminal(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	defer func() { readPassword, isTerminal = oldRead, oldTerm }()
	readPassword = func(int) ([]byte, error) { return []byte("hunter2"), nil }
	isTerminal = func(int) bool { return true }

	var w bytes.Buffer
	pw, err := promptPassword(os.Stdin, &w, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
	assert.Equal(t, "Password: \n", w.String())
}

func TestPromptPassword_Piped(t *testing.T) {
	var w bytes.Buffer
	pw, err := promptPassword(strings.NewReader("s3cret\r\n"), &w, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = promptPassword(strings.NewReader("no-newline"), &w, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = promptPassword(strings.NewReader(""), &w, "Password: ")
	assert.Error(t, err)
}
