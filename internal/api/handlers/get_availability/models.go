package get_availability

import (
	getAvailability "github.com/m04kA/SMC-SchedulerService/internal/usecase/get_availability"
)

// SlotResponse статус одного слота
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date        string         `json:"date"`
	BookedTimes []string       `json:"bookedTimes"`
	IsBlackout  bool           `json:"isBlackout"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	booked := make([]string, 0, len(resp.BookedTimes))
	for _, t := range resp.BookedTimes {
		booked = append(booked, t.String())
	}

	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{Time: s.Time.String(), Available: s.Available, Reason: s.Reason})
	}

	return &AvailabilityResponse{
		Date:        resp.Date.String(),
		BookedTimes: booked,
		IsBlackout:  resp.IsBlackout,
		Slots:       slots,
	}
}
