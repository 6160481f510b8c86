package googlecalendar

import "errors"

var (
	// ErrInit возвращается, если не удалось создать клиент Calendar API
	ErrInit = errors.New("googlecalendar: failed to init client")

	// ErrInsert возвращается, если API не принял событие
	ErrInsert = errors.New("googlecalendar: failed to insert event")
)
