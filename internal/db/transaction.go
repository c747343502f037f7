package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// inTransaction runs fn in a transaction on conn. It commits when fn returns
// nil and rolls back on every other exit path, panics included.
func inTransaction(ctx context.Context, conn *sql.Conn, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error().Err(err).Msg("Failed to rollback transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit transaction")
	}
	committed = true
	return nil
}

// NewVeterinarian is the full record needed to hire a veterinarian
type NewVeterinarian struct {
	ID             string  `validate:"required,number"`
	Name           string  `validate:"required"`
	PayRate        float64 `validate:"gte=0"`
	Address        string
	Email          string `validate:"omitempty,email"`
	Phone          string
	Specialization string `validate:"required"`
}

// InsertVeterinarian creates the workers row and the veterinarians row in one
// transaction. Either both are committed or neither is.
func (s *Store) InsertVeterinarian(ctx context.Context, vet NewVeterinarian) error {
	return s.client.with("insert_veterinarian", func(conn *sql.Conn, d Dialect) error {
		if err := s.validateVeterinarian(vet); err != nil {
			return err
		}
		return inTransaction(ctx, conn, func(tx *sql.Tx) error {
			_, err := execBuilder(ctx, tx, d.builder().
				Insert("workers").
				Columns("w_id", "name", "pay_rate", "address", "email", "phone").
				Values(vet.ID, vet.Name, vet.PayRate, vet.Address, vet.Email, vet.Phone))
			if err != nil {
				return dbError(err, "failed to insert worker %s", vet.ID)
			}

			_, err = execBuilder(ctx, tx, d.builder().
				Insert("veterinarians").
				Columns("w_id", "specialization").
				Values(vet.ID, vet.Specialization))
			if err != nil {
				return dbError(err, "failed to insert veterinarian %s", vet.ID)
			}
			return nil
		})
	})
}

func (s *Store) validateVeterinarian(vet NewVeterinarian) error {
	err := s.validate.Struct(vet)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "invalid veterinarian validation rules")
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fe.Field()+" failed '"+fe.Tag()+"'")
	}
	return validationErrorf("invalid veterinarian %s: %s", vet.ID, strings.Join(problems, ", "))
}
