package toggle_blackout

import "github.com/m04kA/SMC-SchedulerService/internal/service/blackouts"

// ToggleBlackoutRequest HTTP request model
type ToggleBlackoutRequest struct {
	Date        string `json:"date"`
	IsBlackout  bool   `json:"isBlackout"`
	AdminSecret string `json:"adminSecret"`
}

// ToggleBlackoutResponse HTTP response model
type ToggleBlackoutResponse struct {
	Date       string `json:"date"`
	IsBlackout bool   `json:"isBlackout"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ToggleBlackoutRequest) ToServiceRequest() *blackouts.ToggleRequest {
	return &blackouts.ToggleRequest{
		Date:        r.Date,
		IsBlackout:  r.IsBlackout,
		AdminSecret: r.AdminSecret,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *blackouts.ToggleResponse) *ToggleBlackoutResponse {
	return &ToggleBlackoutResponse{Date: resp.Date.String(), IsBlackout: resp.IsBlackout}
}
