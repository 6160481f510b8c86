package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL-диалект основного хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Builder squirrel-билдер с плейсхолдерами нужного диалекта
type Builder struct {
	squirrel.StatementBuilderType
	dialect Dialect
}

// New создает билдер: $1, $2 для postgres и ? для sqlite
func New(dialect Dialect) (*Builder, error) {
	switch dialect {
	case DialectPostgres:
		return &Builder{
			StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
			dialect:              dialect,
		}, nil
	case DialectSQLite:
		return &Builder{
			StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			dialect:              dialect,
		}, nil
	default:
		return nil, fmt.Errorf("sqlbuilder: unsupported dialect %q", dialect)
	}
}

// Dialect возвращает диалект билдера
func (b *Builder) Dialect() Dialect {
	return b.dialect
}
