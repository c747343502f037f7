package db

import (
	"net/url"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures the few places where the zoo queries differ per engine
type Dialect struct {
	Name        string
	driver      string
	placeholder squirrel.PlaceholderFormat
	// castInt renders an expression cast to integer, used for numeric ordering of text ids
	castInt func(expr string) string
	// containsFold renders a case-insensitive pattern match against one placeholder
	containsFold func(expr string) string
	// tableNames selects the base tables of the connected database
	tableNames func(b squirrel.StatementBuilderType) squirrel.SelectBuilder
}

var (
	Postgres = Dialect{
		Name:         "postgres",
		driver:       "pgx",
		placeholder:  squirrel.Dollar,
		castInt:      func(expr string) string { return expr + "::integer" },
		containsFold: func(expr string) string { return expr + " ILIKE ?" },
		tableNames:   informationSchemaTables("current_schema()"),
	}
	MySQL = Dialect{
		Name:         "mysql",
		driver:       "mysql",
		placeholder:  squirrel.Question,
		castInt:      func(expr string) string { return "CAST(" + expr + " AS SIGNED)" },
		containsFold: func(expr string) string { return "LOWER(" + expr + ") LIKE LOWER(?)" },
		tableNames:   informationSchemaTables("DATABASE()"),
	}
	SQLite = Dialect{
		Name:         "sqlite",
		driver:       "sqlite3",
		placeholder:  squirrel.Question,
		castInt:      func(expr string) string { return "CAST(" + expr + " AS INTEGER)" },
		containsFold: func(expr string) string { return "LOWER(" + expr + ") LIKE LOWER(?)" },
		tableNames: func(b squirrel.StatementBuilderType) squirrel.SelectBuilder {
			return b.Select("name").
				From("sqlite_master").
				Where(squirrel.Eq{"type": "table"}).
				Where("name NOT LIKE 'sqlite_%'")
		},
	}
)

func informationSchemaTables(schemaExpr string) func(b squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return func(b squirrel.StatementBuilderType) squirrel.SelectBuilder {
		return b.Select("table_name").
			From("information_schema.tables").
			Where("table_schema = " + schemaExpr).
			Where(squirrel.Eq{"table_type": "BASE TABLE"})
	}
}

// builder returns a statement builder using the dialect's placeholders
func (d Dialect) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// orderByID renders ORDER BY terms that sort text ids numerically
func (d Dialect) orderByID(exprs ...string) []string {
	terms := make([]string, len(exprs))
	for i, e := range exprs {
		terms[i] = d.castInt(e)
	}
	return terms
}

// Credentials identifies the database to connect to. User and Password, when
// set, override the user info carried by URL. SQLite ignores them.
type Credentials struct {
	URL      string
	User     string
	Password string
}

// resolve detects the dialect and returns the driver data source name
func (c Credentials) resolve() (Dialect, string, error) {
	raw := c.URL
	if raw == "" {
		return Dialect{}, "", errors.New("database URL is required")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if c.User == "" {
			return Postgres, raw, nil
		}
		u, err := url.Parse(raw)
		if err != nil {
			return Dialect{}, "", errors.Wrap(err, "invalid postgres URL")
		}
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
		return Postgres, u.String(), nil

	case strings.HasPrefix(raw, "mysql://"):
		cfg, err := mysql.ParseDSN(strings.TrimPrefix(raw, "mysql://"))
		if err != nil {
			return Dialect{}, "", errors.Wrap(err, "invalid mysql DSN")
		}
		if c.User != "" {
			cfg.User = c.User
			cfg.Passwd = c.Password
		}
		// DATE columns must come back as time.Time
		cfg.ParseTime = true
		return MySQL, cfg.FormatDSN(), nil

	case strings.HasPrefix(raw, "sqlite://"):
		return SQLite, strings.TrimPrefix(raw, "sqlite://"), nil
	}

	return Dialect{}, "", errors.New("invalid database URL scheme (must start with postgres://, mysql://, or sqlite://)")
}
