package db

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
)

// WorkerField enumerates the worker columns that may be updated
type WorkerField int

const (
	WorkerAddress WorkerField = iota + 1
	WorkerEmail
	WorkerPhone
	WorkerPayRate
)

var workerFieldColumns = map[WorkerField]string{
	WorkerAddress: "address",
	WorkerEmail:   "email",
	WorkerPhone:   "phone",
	WorkerPayRate: "pay_rate",
}

// WorkerFields lists the updatable worker fields in display order
func WorkerFields() []WorkerField {
	return []WorkerField{WorkerAddress, WorkerEmail, WorkerPhone, WorkerPayRate}
}

// Column returns the database column, or "" for an unknown field
func (f WorkerField) Column() string {
	return workerFieldColumns[f]
}

func (f WorkerField) String() string {
	if col, ok := workerFieldColumns[f]; ok {
		return col
	}
	return "WorkerField(" + strconv.Itoa(int(f)) + ")"
}

// ParseWorkerField maps a field name such as "email", "pay_rate" or
// "Pay Rate" to its WorkerField
func ParseWorkerField(name string) (WorkerField, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for field, col := range workerFieldColumns {
		if col == normalized {
			return field, nil
		}
	}
	return 0, validationErrorf("unsupported worker field %q", name)
}

// ParsePayRate parses a pay rate entered as text
func ParsePayRate(value string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, validationErrorf("pay rate must be a decimal number, got %q", value)
	}
	return rate, nil
}

// DeleteAnimal physically removes an animal. A missing animal is ErrNotFound;
// any database failure rolls the delete back before it is returned.
func (s *Store) DeleteAnimal(ctx context.Context, id string) error {
	return s.client.with("delete_animal", func(conn *sql.Conn, d Dialect) error {
		return inTransaction(ctx, conn, func(tx *sql.Tx) error {
			affected, err := execBuilder(ctx, tx, d.builder().
				Delete("animals1").
				Where(squirrel.Eq{"a_id": id}))
			if err != nil {
				return dbError(err, "failed to delete animal %s", id)
			}
			if affected == 0 {
				return notFoundf("animal %s does not exist", id)
			}
			return nil
		})
	})
}

// UpdateWorker sets one allowlisted column of a worker. The field and value
// are validated before any statement runs; pay rates must be decimal numbers.
func (s *Store) UpdateWorker(ctx context.Context, id string, field WorkerField, value string) error {
	return s.client.with("update_worker", func(conn *sql.Conn, d Dialect) error {
		column := field.Column()
		if column == "" {
			return validationErrorf("unsupported worker field %s", field)
		}

		var arg any = value
		if field == WorkerPayRate {
			rate, err := ParsePayRate(value)
			if err != nil {
				return errors.Wrapf(err, "worker %s", id)
			}
			arg = rate
		}

		return inTransaction(ctx, conn, func(tx *sql.Tx) error {
			affected, err := execBuilder(ctx, tx, d.builder().
				Update("workers").
				Set(column, arg).
				Where(squirrel.Eq{"w_id": id}))
			if err != nil {
				return dbError(err, "failed to update %s of worker %s", column, id)
			}
			if affected == 0 {
				return notFoundf("worker %s does not exist", id)
			}
			return nil
		})
	})
}
