// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

// Supported dialects.
const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// DisplayName returns the human-readable product name.
func (d Dialect) DisplayName() string {
	switch d {
	case DialectPostgres:
		return "PostgreSQL"
	case DialectMySQL:
		return "MySQL"
	case DialectSQLite:
		return "SQLite"
	default:
		return string(d)
	}
}

func (d Dialect) driverName() string {
	return string(d)
}

func (d Dialect) gooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return string(d)
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// arrayValue encodes an ordered string list for the dialect's array column.
func (d Dialect) arrayValue(items []string) driver.Valuer {
	if items == nil {
		items = []string{}
	}
	if d == DialectPostgres {
		return pq.StringArray(items)
	}
	return jsonArray{items: &items}
}

// arrayScanner returns a scan destination that fills dst.
func (d Dialect) arrayScanner(dst *[]string) any {
	if d == DialectPostgres {
		return (*pq.StringArray)(dst)
	}
	return jsonArray{items: dst}
}

// isUniqueViolation reports whether err is the store rejecting a duplicate key.
func (d Dialect) isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

// isMissingTable reports whether err means the projects table does not exist.
func (d Dialect) isMissingTable(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1146
	}

	return strings.Contains(err.Error(), "no such table")
}

// jsonArray stores a string list as a JSON array in a text or JSON column.
type jsonArray struct {
	items *[]string
}

// Value implements driver.Valuer.
func (a jsonArray) Value() (driver.Value, error) {
	items := []string{}
	if a.items != nil && *a.items != nil {
		items = *a.items
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (a jsonArray) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a.items = []string{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scanning string list: unsupported type %T", src)
	}

	items := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("scanning string list: %w", err)
		}
	}
	if items == nil {
		items = []string{}
	}
	*a.items = items
	return nil
}
