package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/testutil"
)

type stubAuthorizer struct {
	token string
}

func (a stubAuthorizer) Authorize(_ context.Context, _ model.GameID, token string) error {
	if token != a.token {
		return model.ErrForbidden
	}
	return nil
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, "error", "Game not found: abc")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var seen *FlashMessage
	handler := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetFlash(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, "error", seen.Type)
	assert.Equal(t, "Game not found: abc", seen.Message)

	// The flash cookie is cleared once read
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestParseFlashWithoutType(t *testing.T) {
	flash := parseFlash("hello")
	assert.Equal(t, "info", flash.Type)
	assert.Equal(t, "hello", flash.Message)
}

func TestFlashTextWithoutFlash(t *testing.T) {
	assert.Empty(t, FlashText(context.Background()))
}

func TestOwner(t *testing.T) {
	var owner bool
	r := mux.NewRouter()
	r.Handle("/games/{id}", Owner(stubAuthorizer{token: "secret"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner = IsOwner(r.Context())
	})))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"no cookie", nil, false},
		{"valid cookie", &http.Cookie{Name: OwnerCookieName("g1"), Value: "secret"}, true},
		{"wrong token", &http.Cookie{Name: OwnerCookieName("g1"), Value: "guess"}, false},
		{"other game's cookie", &http.Cookie{Name: OwnerCookieName("g2"), Value: "secret"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/games/g1", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, owner)
		})
	}
}

func TestOwnerCookieNames(t *testing.T) {
	assert.Equal(t, "mf_abc", OwnerCookieName("abc"))

	rec := httptest.NewRecorder()
	SetOwnerCookie(rec, "abc", "tok")
	ClearOwnerCookie(rec, "abc")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, -1, cookies[1].MaxAge)
}

func TestRecoveryRendersErrorPage(t *testing.T) {
	handler := Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("board vanished")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/abc", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Something went wrong")
	assert.Contains(t, rr.Body.String(), "Error - Minefield")
	assert.NotContains(t, rr.Body.String(), "board vanished")
}
