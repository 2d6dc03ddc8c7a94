package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

func TestClient_GetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/5":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":5,"first_name":"Анна","last_name":"Петрова","phone":"+79990000000"}`))
		case "/internal/users/6":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/users/8":
			_, _ = w.Write([]byte(`{"id":9,"first_name":"Иван"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second, logger.Discard())
	ctx := context.Background()

	profile, err := client.GetProfile(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Анна Петрова", profile.DisplayName())
	assert.Equal(t, "+79990000000", profile.Phone)

	_, err = client.GetProfile(ctx, 6)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetProfile(ctx, 7)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetProfile(ctx, 8)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetProfileWithGracefulDegradation(ctx, 7)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	_, err = client.GetProfileWithGracefulDegradation(ctx, 6)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
