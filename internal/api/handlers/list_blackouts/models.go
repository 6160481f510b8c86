package list_blackouts

import "github.com/m04kA/SMC-SchedulerService/pkg/types"

// BlackoutsResponse HTTP response model
type BlackoutsResponse struct {
	BlackoutDates []string `json:"blackoutDates"`
}

// FromDates конвертирует список дат в HTTP модель
func FromDates(dates []types.DateString) *BlackoutsResponse {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return &BlackoutsResponse{BlackoutDates: out}
}
