package bookings

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном периоде выгрузки
	ErrInvalidRange = errors.New("bookings: invalid date range")

	// ErrRender возвращается, если не удалось сформировать файл выгрузки
	ErrRender = errors.New("bookings: failed to render export")
)
