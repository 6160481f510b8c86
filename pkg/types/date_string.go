package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты
const DateLayout = "2006-01-02"

// ErrInvalidDateString возвращается, когда строка не является датой YYYY-MM-DD
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата YYYY-MM-DD без часового пояса
// День недели, месяц и число всегда вычисляются в UTC, чтобы локальная зона
// сервера не сдвигала дату
type DateString string

// NewDateString создает DateString из time.Time в его собственной зоне
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateLayout))
}

// NewDateStringFromString парсит строку YYYY-MM-DD
func NewDateStringFromString(s string) (DateString, error) {
	d := DateString(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate проверяет, что строка является существующей датой
func (d DateString) Validate() error {
	if len(d) != len(DateLayout) {
		return ErrInvalidDateString
	}
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateString, err)
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (d DateString) IsZero() bool {
	return d == ""
}

func (d DateString) String() string {
	return string(d)
}

// Time возвращает полночь UTC этой даты; для невалидной строки возвращает нулевое время
func (d DateString) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Weekday день недели в UTC
func (d DateString) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Month месяц в UTC
func (d DateString) Month() time.Month {
	return d.Time().Month()
}

// Day число месяца в UTC
func (d DateString) Day() int {
	return d.Time().Day()
}

// IsBefore строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return d.Time().Before(other.Time())
}

// At возвращает момент времени t в дате d в зоне loc
func (d DateString) At(t TimeString, loc *time.Location) time.Time {
	base := d.Time()
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan реализует sql.Scanner
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*d = DateString(v)
	case []byte:
		*d = DateString(v)
	case time.Time:
		*d = NewDateString(v.UTC())
	case nil:
		*d = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateString, src)
	}
	return nil
}
