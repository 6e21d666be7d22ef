package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/userapi/internal/config"
)

func TestNew_Backends(t *testing.T) {
	for _, storage := range []string{"memory", "sql"} {
		t.Run(storage, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage = storage
			cfg.DBDriver = "sqlite"
			cfg.DBDSN = ":memory:"

			a, err := New(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			page, err := a.Users.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, page.TotalUsers)

			rr := httptest.NewRecorder()
			a.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/3", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestNew_BadDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = "sql"
	cfg.DBDriver = "mysql"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
