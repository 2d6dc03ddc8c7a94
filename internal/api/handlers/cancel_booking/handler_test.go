package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type fakeCancel struct {
	got  *manageSlots.CancelRequest
	resp *manageSlots.CancelResponse
	err  error
}

func (f *fakeCancel) Cancel(_ context.Context, req *manageSlots.CancelRequest) (*manageSlots.CancelResponse, error) {
	f.got = req
	return f.resp, f.err
}

type fakeCalendar struct{}

func (fakeCalendar) Execute(_ context.Context, req *getCalendar.Request) (*getCalendar.Response, error) {
	return &getCalendar.Response{Days: []getCalendar.Day{{Date: req.Date, Weekday: "Mon"}}}, nil
}

func serve(h *Handler, path, userID, role string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/orgs/{orgId}/bookings/{bookingId}", middleware.Auth(http.HandlerFunc(h.Handle))).
		Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	if role != "" {
		req.Header.Set(middleware.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	uc := &fakeCancel{resp: &manageSlots.CancelResponse{
		BookingID:  8,
		Date:       domain.NewDate(2024, time.January, 15),
		Hour:       9,
		SlotStatus: domain.StatusOpen,
		Occupancy:  1,
	}}
	h := NewHandler(uc, fakeCalendar{}, logger.Discard())

	rec := serve(h, "/orgs/3/bookings/8", "7", "admin")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.IsAdmin)
	assert.Equal(t, int64(7), uc.got.ActorID)
	assert.Equal(t, int64(8), uc.got.BookingID)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "9", resp.Hour)
	assert.Equal(t, "open", resp.SlotStatus)
	assert.Equal(t, 1, resp.Occupancy)
	require.NotNil(t, resp.Day)
	assert.Equal(t, "15.01.2024", resp.Day.Date)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"bad booking id", "/orgs/3/bookings/abc", nil, http.StatusBadRequest},
		{"zero org id", "/orgs/0/bookings/8", nil, http.StatusBadRequest},
		{"not found", "/orgs/3/bookings/8", lifecycle.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "/orgs/3/bookings/8", lifecycle.ErrAccessDenied, http.StatusForbidden},
		{"too late", "/orgs/3/bookings/8", lifecycle.ErrTooLateToCancel, http.StatusConflict},
		{"store failure", "/orgs/3/bookings/8", lifecycle.ErrStoreFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCancel{err: tt.err}, fakeCalendar{}, logger.Discard())
			rec := serve(h, tt.path, "5", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
