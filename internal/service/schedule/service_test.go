package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/schedule/models"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type memoryRepo struct {
	configs map[int64]domain.ScheduleConfig
	err     error
}

func (r *memoryRepo) GetScheduleConfig(_ context.Context, orgID int64) (*domain.ScheduleConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	cfg, ok := r.configs[orgID]
	if !ok {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return &cfg, nil
}

func (r *memoryRepo) SaveScheduleConfig(_ context.Context, cfg domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	cfg.UpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.configs[cfg.OrgID] = cfg
	return &cfg, nil
}

type configObserver struct {
	got []domain.ScheduleConfig
}

func (o *configObserver) ScheduleChanged(_ context.Context, cfg domain.ScheduleConfig) {
	o.got = append(o.got, cfg)
}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	svc := NewService(&memoryRepo{configs: map[int64]domain.ScheduleConfig{}}, domain.DefaultScheduleConfig(0), logger.Discard())

	resp, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, int64(7), resp.OrgID)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, resp.WorkingDays)
	assert.Nil(t, resp.UpdatedAt)
}

func TestService_UpdateNormalizesAndNotifies(t *testing.T) {
	repo := &memoryRepo{configs: map[int64]domain.ScheduleConfig{}}
	svc := NewService(repo, domain.DefaultScheduleConfig(0), logger.Discard())
	obs := &configObserver{}
	svc.AddObserver(obs)

	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		OrgID:             3,
		StartHour:         8,
		EndHour:           20,
		WorkingDays:       []string{"Сб", "mon", "Ср", "MON"},
		MaxEntriesPerSlot: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Mon", "Wed", "Sat"}, resp.WorkingDays)
	assert.False(t, resp.IsDefault)
	require.NotNil(t, resp.UpdatedAt)

	require.Len(t, obs.got, 1)
	assert.Equal(t, 2, obs.got[0].MaxEntriesPerSlot)

	cfg, isDefault, err := svc.GetConfig(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, isDefault)
	assert.Equal(t, 20, cfg.EndHour)
}

func TestService_UpdateValidation(t *testing.T) {
	svc := NewService(&memoryRepo{configs: map[int64]domain.ScheduleConfig{}}, domain.DefaultScheduleConfig(0), logger.Discard())

	tests := []struct {
		name string
		req  models.UpdateScheduleRequest
	}{
		{"start after end", models.UpdateScheduleRequest{OrgID: 1, StartHour: 18, EndHour: 9, MaxEntriesPerSlot: 1}},
		{"zero capacity", models.UpdateScheduleRequest{OrgID: 1, StartHour: 9, EndHour: 18}},
		{"unknown day", models.UpdateScheduleRequest{OrgID: 1, StartHour: 9, EndHour: 18, MaxEntriesPerSlot: 1, WorkingDays: []string{"Someday"}}},
		{"no org", models.UpdateScheduleRequest{StartHour: 9, EndHour: 18, MaxEntriesPerSlot: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_RepositoryError(t *testing.T) {
	svc := NewService(&memoryRepo{err: errors.New("db down")}, domain.DefaultScheduleConfig(0), logger.Discard())

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
