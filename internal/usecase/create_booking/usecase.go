package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	userClient "github.com/m04kA/SMC-SlotCalendar/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
)

// UseCase use case для создания бронирования
type UseCase struct {
	configs      ConfigProvider
	bookings     BookingManager
	userClient   UserServiceClient
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// userClient может быть nil: тогда данные пользователя берутся только из запроса
func NewUseCase(
	configs ConfigProvider,
	bookings BookingManager,
	userClient UserServiceClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		configs:      configs,
		bookings:     bookings,
		userClient:   userClient,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Ошибки менеджера бронирований (lifecycle.ErrSlotFull и т.д.) возвращаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: org=%d, actor=%d, user=%d, date=%s, hour=%d",
		req.OrgID, req.ActorID, req.UserID, req.Date, req.Hour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем, для кого бронирование
	userID := req.UserID
	if userID == 0 {
		userID = req.ActorID
	}
	self := userID == req.ActorID
	if !self && !req.IsAdmin {
		uc.logger.Warn("CreateBooking: user=%d tried to book for user=%d", req.ActorID, userID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем настройки организации
	cfg, isDefault, err := uc.configs.GetConfig(ctx, req.OrgID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get config for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if isDefault {
		uc.logger.Info("CreateBooking: using default config for org=%d", req.OrgID)
	}

	// 4. Пользователь не может забронировать начавшийся слот
	if self && !req.IsAdmin {
		if err := validateNotInPast(cfg, req.Date, req.Hour, uc.timeProvider.Now(), uc.location); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	// 5. Дополняем данные пользователя из UserService
	userName, userPhone, err := uc.resolveUser(ctx, userID, req.UserName, req.UserPhone)
	if err != nil {
		return nil, err
	}

	// 6. Создаём бронирование с проверкой вместимости
	booking, err := uc.bookings.Create(ctx, cfg, &lifecycle.CreateRequest{
		UserID:          userID,
		Date:            req.Date,
		Hour:            req.Hour,
		InitiatedBySelf: self,
		SeenOccupancy:   req.SeenOccupancy,
		UserName:        userName,
		UserPhone:       userPhone,
		Comment:         req.Comment,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)

	// Конвертируем в response
	return &Response{
		ID:            booking.ID,
		OrgID:         booking.OrgID,
		UserID:        booking.UserID,
		Date:          booking.Date,
		Hour:          booking.Hour,
		SlotStatus:    booking.Status,
		CreatedBySelf: booking.CreatedBySelf,
		UserName:      booking.UserName,
		UserPhone:     booking.UserPhone,
		Comment:       booking.Comment,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// resolveUser возвращает имя и телефон для карточки бронирования.
// Данные из запроса приоритетнее, при недоступности UserService используются они же
func (uc *UseCase) resolveUser(ctx context.Context, userID int64, name, phone string) (string, string, error) {
	if uc.userClient == nil || (name != "" && phone != "") {
		return name, phone, nil
	}

	profile, err := uc.userClient.GetProfileWithGracefulDegradation(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found in UserService", userID)
			return "", "", ErrUserNotFound
		}
		if errors.Is(err, userClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: UserService degraded, using request data for user id=%d", userID)
			return name, phone, nil
		}
		uc.logger.Error("CreateBooking: failed to get profile for user id=%d: %v", userID, err)
		return "", "", fmt.Errorf("%w: failed to get user profile: %v", ErrInternal, err)
	}

	if name == "" {
		name = profile.DisplayName()
	}
	if phone == "" {
		phone = profile.Phone
	}
	return name, phone, nil
}
