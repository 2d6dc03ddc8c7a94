package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakeCalendar struct {
	got *getCalendar.Request
	err error
}

func (f *fakeCalendar) Execute(_ context.Context, req *getCalendar.Request) (*getCalendar.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getCalendar.Response{
		OrgID: req.OrgID,
		Date:  req.Date,
		View:  req.View,
		Days: []getCalendar.Day{{
			Date:        req.Date,
			Weekday:     "Mon",
			ShowThisDay: true,
			Slots:       []getCalendar.Slot{{Hour: 10, Label: "10:00", Occupancy: 1, Capacity: 2, Free: 1}},
		}},
	}, nil
}

func serve(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/orgs/{orgId}/bookings", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/orgs/3/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	date := domain.NewDate(2024, time.January, 15)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            11,
		OrgID:         3,
		UserID:        5,
		Date:          date,
		Hour:          10,
		SlotStatus:    domain.StatusOpen,
		CreatedBySelf: true,
		CreatedAt:     time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC),
	}}
	cal := &fakeCalendar{}
	h := NewHandler(uc, cal, logger.Discard())

	rec := serve(h, `{"date":"15.01.2024","hour":"10","seenOccupancy":0}`, "5")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.OrgID)
	assert.Equal(t, int64(5), uc.got.ActorID)
	assert.Equal(t, date, uc.got.Date)
	assert.Equal(t, 10, uc.got.Hour)
	require.NotNil(t, uc.got.SeenOccupancy)
	assert.Equal(t, 0, *uc.got.SeenOccupancy)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "15.01.2024", resp.Date)
	assert.Equal(t, "10", resp.Hour)
	assert.Equal(t, "open", resp.SlotStatus)
	require.NotNil(t, resp.Day)
	assert.Equal(t, "15.01.2024", resp.Day.Date)
	assert.Equal(t, domain.ViewDay, cal.got.View)
}

func TestHandler_DayRefreshFailureKeepsBooking(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{ID: 1, Date: domain.NewDate(2024, time.January, 15), Hour: 10}}
	h := NewHandler(uc, &fakeCalendar{err: fmt.Errorf("boom")}, logger.Discard())

	rec := serve(h, `{"date":"15.01.2024","hour":"10"}`, "5")

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Day)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		err        error
		wantStatus int
	}{
		{"missing user", `{"date":"15.01.2024","hour":"10"}`, "", nil, http.StatusUnauthorized},
		{"malformed date", `{"date":"2024-01-15","hour":"10"}`, "5", nil, http.StatusBadRequest},
		{"leading zero hour", `{"date":"15.01.2024","hour":"09"}`, "5", nil, http.StatusBadRequest},
		{"unknown field", `{"date":"15.01.2024","hour":"10","extra":1}`, "5", nil, http.StatusBadRequest},
		{"slot full", `{"date":"15.01.2024","hour":"10"}`, "5",
			fmt.Errorf("%w: Create - re-check", lifecycle.ErrSlotFull), http.StatusConflict},
		{"capacity exceeded", `{"date":"15.01.2024","hour":"10"}`, "5", lifecycle.ErrCapacityExceeded, http.StatusConflict},
		{"slot closed", `{"date":"15.01.2024","hour":"10"}`, "5", lifecycle.ErrSlotClosed, http.StatusConflict},
		{"outside schedule", `{"date":"15.01.2024","hour":"10"}`, "5", lifecycle.ErrOutsideSchedule, http.StatusBadRequest},
		{"in past", `{"date":"15.01.2024","hour":"10"}`, "5", createBooking.ErrSlotInPast, http.StatusBadRequest},
		{"access denied", `{"date":"15.01.2024","hour":"10","userId":9}`, "5", createBooking.ErrAccessDenied, http.StatusForbidden},
		{"user not found", `{"date":"15.01.2024","hour":"10"}`, "5", createBooking.ErrUserNotFound, http.StatusNotFound},
		{"store failure", `{"date":"15.01.2024","hour":"10"}`, "5", lifecycle.ErrStoreFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			h := NewHandler(uc, &fakeCalendar{}, logger.Discard())

			rec := serve(h, tt.body, tt.userID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
