package get_availability

import (
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Request запрос доступности на дату
type Request struct {
	Date string // YYYY-MM-DD
}

// Response занятые слоты, флаг выходного и статус каждого слота каталога
type Response struct {
	Date        types.DateString
	BookedTimes []types.TimeString
	IsBlackout  bool
	Slots       []domain.SlotStatus
}
