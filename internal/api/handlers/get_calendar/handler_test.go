package get_calendar

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
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type fakeUseCase struct {
	got *getCalendar.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getCalendar.Request) (*getCalendar.Response, error) {
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
			Slots: []getCalendar.Slot{{
				Hour:      9,
				Label:     "09:30",
				Status:    domain.StatusOpen,
				Occupancy: 1,
				Capacity:  2,
				Free:      1,
				Bookable:  true,
				Occupants: []getCalendar.Occupant{{BookingID: 1, UserID: 5, IsMine: true, UserName: "Ann"}},
			}},
		}},
	}, nil
}

func serve(h *Handler, target, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/orgs/{orgId}/calendar", middleware.OptionalAuth(http.HandlerFunc(h.Handle))).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Calendar(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Discard())

	rec := serve(h, "/orgs/2/calendar?date=15.01.2024&view=DAY", "5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ViewDay, uc.got.View)
	assert.Equal(t, int64(5), uc.got.ActorID)
	assert.Equal(t, domain.NewDate(2024, time.January, 15), uc.got.Date)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Slots, 1)
	slot := resp.Days[0].Slots[0]
	assert.Equal(t, "9", slot.Hour)
	assert.Equal(t, "09:30", slot.Label)
	assert.Equal(t, "open", slot.Status)
	require.Len(t, slot.Occupants, 1)
	assert.True(t, slot.Occupants[0].IsMine)
}

func TestHandler_AnonymousDefaultsToWeek(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, logger.Discard()), "/orgs/2/calendar?date=15.01.2024", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ViewWeek, uc.got.View)
	assert.Zero(t, uc.got.ActorID)
}

func TestHandler_BadQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing date", "/orgs/2/calendar"},
		{"iso date", "/orgs/2/calendar?date=2024-01-15"},
		{"impossible date", "/orgs/2/calendar?date=31.02.2024"},
		{"unknown view", "/orgs/2/calendar?date=15.01.2024&view=year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(NewHandler(uc, logger.Discard()), tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
