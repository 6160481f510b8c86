package blackouts

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// ToggleRequest запрос администратора на установку или снятие выходного
type ToggleRequest struct {
	Date        string
	IsBlackout  bool
	AdminSecret string
}

// ToggleResponse итоговое состояние даты
type ToggleResponse struct {
	Date       types.DateString
	IsBlackout bool
}

// Service сервис выходных дней, назначаемых администратором
// Бронирования на закрытую дату не отменяются
type Service struct {
	store   Store
	guard   Guard
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса; metrics может быть nil
func NewService(store Store, guard Guard, metrics Metrics, logger Logger) *Service {
	return &Service{store: store, guard: guard, metrics: metrics, logger: logger}
}

// Toggle проверяет секрет, затем дату, затем идемпотентно меняет состояние
func (s *Service) Toggle(ctx context.Context, req *ToggleRequest) (*ToggleResponse, error) {
	if err := s.guard.Check(req.AdminSecret); err != nil {
		s.logger.Warn("ToggleBlackout: rejected admin secret")
		s.observe("unauthorized")
		return nil, err
	}

	date, err := types.NewDateStringFromString(strings.TrimSpace(req.Date))
	if err != nil {
		s.logger.Warn("ToggleBlackout: invalid date %q: %v", req.Date, err)
		s.observe("invalid_date")
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, ErrInvalidDate, err)
	}

	if err := s.store.SetBlackout(ctx, date, req.IsBlackout); err != nil {
		s.logger.Error("ToggleBlackout: failed to set %s=%t: %v", date, req.IsBlackout, err)
		s.observe("storage_error")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.logger.Info("ToggleBlackout: %s isBlackout=%t", date, req.IsBlackout)
	s.observe("success")

	return &ToggleResponse{Date: date, IsBlackout: req.IsBlackout}, nil
}

// List возвращает все выходные дни по возрастанию
func (s *Service) List(ctx context.Context) ([]types.DateString, error) {
	dates, err := s.store.ListBlackouts(ctx)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return dates, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveBlackoutToggle(result)
	}
}
