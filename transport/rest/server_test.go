package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/playground/internal/pkg"
	"github.com/rocketscienceinc/playground/internal/products"
	"github.com/rocketscienceinc/playground/internal/repository"
	"github.com/rocketscienceinc/playground/internal/usecase"
	"github.com/rocketscienceinc/playground/internal/view"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	return newTestServerWithTTL(t, time.Hour)
}

func newTestServerWithTTL(t *testing.T, sessionTTL time.Duration) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessionRepo := repository.NewMemorySessionRepository(time.Hour)
	demo := usecase.NewDemoManager(logger, sessionRepo, products.Catalog(), view.Options{})

	srv := httptest.NewServer(New(logger, demo, sessionTTL).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func get(t *testing.T, client *http.Client, target string) (int, string) {
	t.Helper()

	resp, err := client.Get(target)
	require.NoError(t, err)

	return resp.StatusCode, readBody(t, resp)
}

func post(t *testing.T, client *http.Client, target string, form url.Values) (int, string) {
	t.Helper()

	resp, err := client.PostForm(target, form)
	require.NoError(t, err)

	return resp.StatusCode, readBody(t, resp)
}

func TestServer_Ping(t *testing.T) {
	srv, client := newTestServer(t)

	status, body := get(t, client, srv.URL+"/ping")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)
}

func TestServer_Index(t *testing.T) {
	srv, client := newTestServer(t)

	status, body := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `href="/tictactoe"`)

	status, _ = get(t, client, srv.URL+"/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_Game(t *testing.T) {
	t.Run("First visit sets the session cookie and shows a fresh game", func(t *testing.T) {
		srv, client := newTestServer(t)

		// When: the game page is requested
		resp, err := client.Get(srv.URL + "/tictactoe")
		require.NoError(t, err)
		body := readBody(t, resp)

		// Then: a session cookie is issued and the status names X
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, "Next player: X")
		assert.Contains(t, body, "You&#39;re at move #0")

		serverURL, err := url.Parse(srv.URL)
		require.NoError(t, err)

		cookies := client.Jar.Cookies(serverURL)
		require.Len(t, cookies, 1)
		assert.Equal(t, pkg.SessionCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("Zero session TTL still keeps the session across requests", func(t *testing.T) {
		srv, client := newTestServerWithTTL(t, 0)

		// When: a move is posted and the redirect is followed
		status, body := post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"4"}})

		// Then: the cookie is kept by the client and the move is shown
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Next player: O")

		serverURL, err := url.Parse(srv.URL)
		require.NoError(t, err)
		assert.Len(t, client.Jar.Cookies(serverURL), 1)
	})

	t.Run("Moves, jumps, reverse and reset redirect back to the game", func(t *testing.T) {
		srv, client := newTestServer(t)

		// Given: X on 4 and O on 0
		status, body := post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"4"}})
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Next player: O")

		status, body = post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"0"}})
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "You&#39;re at move #2")

		// When: jumping back to move 1
		_, body = post(t, client, srv.URL+"/tictactoe/jump", url.Values{"index": {"1"}})

		// Then: O is next again and move 2 is still listed
		assert.Contains(t, body, "Next player: O")
		assert.Contains(t, body, "You&#39;re at move #1")
		assert.Contains(t, body, "Go back to state #2 where was clicked at (1, 1) cell")

		// When: reversing the history order
		_, body = post(t, client, srv.URL+"/tictactoe/order", nil)

		// Then: the newest entry comes first
		assert.Contains(t, body, "Reverse order (on)")
		assert.Less(t, strings.Index(body, "state #2"), strings.Index(body, "start state"))

		// When: resetting
		_, body = post(t, client, srv.URL+"/tictactoe/reset", nil)

		// Then: the game is fresh
		assert.Contains(t, body, "Next player: X")
		assert.Contains(t, body, "You&#39;re at move #0")
		assert.NotContains(t, body, "state #2")
	})

	t.Run("Move does not follow the redirect with the same method", func(t *testing.T) {
		srv, client := newTestServer(t)
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}

		resp, err := client.PostForm(srv.URL+"/tictactoe/move", url.Values{"cell": {"4"}})
		require.NoError(t, err)
		_ = readBody(t, resp)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/tictactoe", resp.Header.Get("Location"))
	})

	t.Run("Malformed cell is a bad request", func(t *testing.T) {
		srv, client := newTestServer(t)

		status, _ := post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"abc"}})

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Out of range cell is ignored", func(t *testing.T) {
		srv, client := newTestServer(t)

		status, body := post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"42"}})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Next player: X")
	})

	t.Run("Sessions are isolated per cookie", func(t *testing.T) {
		srv, client := newTestServer(t)
		_, other := newTestServer(t)

		post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"4"}})

		_, body := get(t, other, srv.URL+"/tictactoe")
		assert.Contains(t, body, "Next player: X")
	})
}

func TestServer_Products(t *testing.T) {
	t.Run("Full table without a query", func(t *testing.T) {
		srv, client := newTestServer(t)

		status, body := get(t, client, srv.URL+"/products")

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Fruits")
		assert.Contains(t, body, "Vegetables")
		assert.Contains(t, body, "Spinach")
	})

	t.Run("Search filters and is remembered for the session", func(t *testing.T) {
		srv, client := newTestServer(t)

		// When: searching for fruit
		_, body := get(t, client, srv.URL+"/products?q=fruit")

		// Then: only fruits are listed
		assert.Contains(t, body, "Passionfruit")
		assert.NotContains(t, body, "Spinach")

		// When: revisiting without a query
		_, body = get(t, client, srv.URL+"/products")

		// Then: the filter is kept
		assert.Contains(t, body, `value="fruit"`)
		assert.NotContains(t, body, "Spinach")
	})

	t.Run("Stock checkbox hides unstocked products", func(t *testing.T) {
		srv, client := newTestServer(t)

		_, body := get(t, client, srv.URL+"/products?q=&stock=on")

		assert.NotContains(t, body, "Passionfruit")
		assert.NotContains(t, body, "Pumpkin")
		assert.Contains(t, body, "Dragonfruit")
		assert.Contains(t, body, " checked")
	})
}

func TestServer_InvalidCookieGetsNewSession(t *testing.T) {
	srv, _ := newTestServer(t)

	// Given: a request carrying a forged session cookie
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/tictactoe", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: pkg.SessionCookieName, Value: "forged"})

	// When: it is sent
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = readBody(t, resp)

	// Then: a new session cookie replaces it
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var issued string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == pkg.SessionCookieName {
			issued = cookie.Value
		}
	}
	assert.NotEmpty(t, issued)
	assert.NotEqual(t, "forged", issued)
}

func TestServer_EndSession(t *testing.T) {
	t.Run("Forgets the game and drops the cookie", func(t *testing.T) {
		srv, client := newTestServer(t)

		// Given: a session with one move
		_, body := post(t, client, srv.URL+"/tictactoe/move", url.Values{"cell": {"4"}})
		require.Contains(t, body, "Next player: O")

		serverURL, err := url.Parse(srv.URL)
		require.NoError(t, err)
		before := client.Jar.Cookies(serverURL)
		require.Len(t, before, 1)

		// When: the session is ended
		status, body := post(t, client, srv.URL+"/session/end", nil)

		// Then: the index is shown and the cookie is gone
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `href="/tictactoe"`)
		assert.Empty(t, client.Jar.Cookies(serverURL))

		// When: the game is visited again
		_, body = get(t, client, srv.URL+"/tictactoe")

		// Then: a fresh game under a new session
		assert.Contains(t, body, "Next player: X")
		after := client.Jar.Cookies(serverURL)
		require.Len(t, after, 1)
		assert.NotEqual(t, before[0].Value, after[0].Value)
	})

	t.Run("Without a session it only redirects", func(t *testing.T) {
		srv, client := newTestServer(t)
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}

		resp, err := client.PostForm(srv.URL+"/session/end", nil)
		require.NoError(t, err)
		_ = readBody(t, resp)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})
}
