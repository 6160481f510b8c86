package sqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Placeholders(t *testing.T) {
	pg, err := New(DialectPostgres)
	require.NoError(t, err)

	query, args, err := pg.Select("start_time").
		From("bookings").
		Where(squirrel.Eq{"booking_date": "2025-06-10"}).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT start_time FROM bookings WHERE booking_date = $1", query)
	assert.Equal(t, []interface{}{"2025-06-10"}, args)

	lite, err := New(DialectSQLite)
	require.NoError(t, err)

	query, _, err = lite.Select("start_time").
		From("bookings").
		Where(squirrel.Eq{"booking_date": "2025-06-10"}).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT start_time FROM bookings WHERE booking_date = ?", query)
	assert.Equal(t, DialectSQLite, lite.Dialect())
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New("mysql")
	assert.Error(t, err)
}
