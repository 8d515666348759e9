package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/shared/errors"
)

func newTestExchanger(t *testing.T, handler http.Handler) *Exchanger {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewExchanger(server.URL)
}

func TestExchanger_Exchange(t *testing.T) {
	exchanger := newTestExchanger(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/access_token", r.URL.Path)
		assert.Equal(t, "the-code", r.FormValue("code"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"gho_abc","token_type":"bearer"}`)
	}))

	token, err := exchanger.Exchange(context.Background(), "cid", "secret", "the-code")
	require.NoError(t, err)
	assert.Equal(t, "gho_abc", token)
}

func TestExchanger_Exchange_ProviderRejection(t *testing.T) {
	exchanger := newTestExchanger(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"bad_verification_code"}`)
	}))

	_, err := exchanger.Exchange(context.Background(), "cid", "secret", "bad-code")
	require.Error(t, err)
	assert.True(t, errors.IsRemoteError(err))
}

func TestExchanger_Exchange_MissingAccessToken(t *testing.T) {
	exchanger := newTestExchanger(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type":"bearer"}`)
	}))

	_, err := exchanger.Exchange(context.Background(), "cid", "secret", "the-code")
	assert.ErrorIs(t, err, ErrNoAccessToken)
}
