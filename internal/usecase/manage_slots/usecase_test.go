package manage_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type staticConfigs struct{}

func (staticConfigs) GetConfig(_ context.Context, orgID int64) (domain.ScheduleConfig, bool, error) {
	cfg := domain.DefaultScheduleConfig(orgID)
	cfg.MaxEntriesPerSlot = 2
	return cfg, false, nil
}

type fakeManager struct {
	occupancy int
	stored    domain.SlotStatus
	cancelReq *lifecycle.CancelRequest
	toggleReq *lifecycle.ToggleRequest
}

func (m *fakeManager) CheckAvailability(_ context.Context, _ domain.ScheduleConfig, _ domain.Date, _ int) (int, error) {
	return m.occupancy, nil
}

func (m *fakeManager) Cancel(_ context.Context, _ domain.ScheduleConfig, req *lifecycle.CancelRequest) (*lifecycle.CancelResult, error) {
	m.cancelReq = req
	return &lifecycle.CancelResult{
		Booking:         domain.Booking{ID: req.BookingID, Date: domain.MustParseDate("15.01.2024"), Hour: 10},
		ResultingStatus: domain.StatusOpen,
	}, nil
}

func (m *fakeManager) ToggleSlotStatus(_ context.Context, cfg domain.ScheduleConfig, req *lifecycle.ToggleRequest) (*lifecycle.ToggleResult, error) {
	m.toggleReq = req
	if req.CurrentOccupancy >= cfg.MaxEntriesPerSlot {
		return &lifecycle.ToggleResult{Toggled: false}, nil
	}
	return &lifecycle.ToggleResult{Toggled: true, Status: domain.StatusClosed}, nil
}

func (m *fakeManager) SlotStatus(context.Context, domain.ScheduleConfig, domain.Date, int) (domain.SlotStatus, error) {
	return m.stored, nil
}

func TestUseCase_CancelPassesAdminFlag(t *testing.T) {
	manager := &fakeManager{}
	uc := NewUseCase(staticConfigs{}, manager, logger.Discard())

	resp, err := uc.Cancel(context.Background(), &CancelRequest{OrgID: 1, ActorID: 5, BookingID: 3})
	require.NoError(t, err)
	assert.False(t, manager.cancelReq.IsAdmin)
	assert.Equal(t, int64(5), manager.cancelReq.UserID)
	assert.Equal(t, domain.StatusOpen, resp.SlotStatus)

	_, err = uc.Cancel(context.Background(), &CancelRequest{OrgID: 1, ActorID: 5, BookingID: 3, IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, manager.cancelReq.IsAdmin)

	_, err = uc.Cancel(context.Background(), &CancelRequest{OrgID: 1, ActorID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_TogglePassesStoreOccupancy(t *testing.T) {
	manager := &fakeManager{occupancy: 1}
	uc := NewUseCase(staticConfigs{}, manager, logger.Discard())
	date := domain.MustParseDate("15.01.2024")

	resp, err := uc.Toggle(context.Background(), &ToggleRequest{OrgID: 1, IsAdmin: true, Date: date, Hour: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, manager.toggleReq.CurrentOccupancy)
	assert.True(t, resp.Toggled)
	assert.Equal(t, domain.StatusClosed, resp.Status)

	_, err = uc.Toggle(context.Background(), &ToggleRequest{OrgID: 1, Date: date, Hour: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_ToggleOnFullSlotReportsStoredStatus(t *testing.T) {
	// Вместимость уменьшили ниже занятости, а слот остался открытым
	manager := &fakeManager{occupancy: 3, stored: domain.StatusOpen}
	uc := NewUseCase(staticConfigs{}, manager, logger.Discard())

	resp, err := uc.Toggle(context.Background(), &ToggleRequest{
		OrgID: 1, IsAdmin: true, Date: domain.MustParseDate("15.01.2024"), Hour: 10,
	})
	require.NoError(t, err)
	assert.False(t, resp.Toggled)
	assert.Equal(t, domain.StatusOpen, resp.Status)
	assert.Equal(t, 3, resp.Occupancy)
}

func TestUseCase_Occupancy(t *testing.T) {
	uc := NewUseCase(staticConfigs{}, &fakeManager{occupancy: 3}, logger.Discard())

	resp, err := uc.Occupancy(context.Background(), &OccupancyRequest{OrgID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Occupancy)
	assert.Equal(t, 2, resp.Capacity)
	assert.Equal(t, 0, resp.Free)

	_, err = uc.Occupancy(context.Background(), &OccupancyRequest{OrgID: 1, Hour: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
