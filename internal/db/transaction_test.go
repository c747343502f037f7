package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/zoodb/internal/zoo"
)

func validVet(id string) NewVeterinarian {
	return NewVeterinarian{
		ID:             id,
		Name:           "Hana",
		PayRate:        41.5,
		Address:        "20 Zoo Rd",
		Email:          "hana@zoo.test",
		Phone:          "555-0020",
		Specialization: "Exotics",
	}
}

func TestInsertVeterinarian(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertVeterinarian(ctx, validVet("20")))

	vets, err := store.ListVeterinarians(ctx)
	require.NoError(t, err)
	last := vets[len(vets)-1]
	assert.Equal(t, zoo.Veterinarian{
		Worker: zoo.Worker{
			ID:      "20",
			Name:    "Hana",
			PayRate: 41.5,
			Address: "20 Zoo Rd",
			Email:   "hana@zoo.test",
			Phone:   "555-0020",
		},
		Specialization: "Exotics",
	}, last)
}

func TestInsertVeterinarianDuplicateWorker(t *testing.T) {
	store := newTestStore(t)
	before := countRows(t, store.Client(), "veterinarians", "")

	err := store.InsertVeterinarian(context.Background(), validVet("1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, before, countRows(t, store.Client(), "veterinarians", ""))
}

func TestInsertVeterinarianRollsBackWorker(t *testing.T) {
	store := newTestStore(t)
	// a stray veterinarians row makes the second insert fail
	execSQL(t, store.Client(), "INSERT INTO veterinarians (w_id, specialization) VALUES ('99', 'Ghost')")

	err := store.InsertVeterinarian(context.Background(), validVet("99"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Contains(t, err.Error(), "veterinarian 99")

	assert.Zero(t, countRows(t, store.Client(), "workers", "w_id = ?", "99"))
}

func TestInsertVeterinarianValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *NewVeterinarian)
	}{
		{"missing id", func(v *NewVeterinarian) { v.ID = "" }},
		{"non numeric id", func(v *NewVeterinarian) { v.ID = "v-1" }},
		{"missing name", func(v *NewVeterinarian) { v.Name = "" }},
		{"negative pay", func(v *NewVeterinarian) { v.PayRate = -1 }},
		{"bad email", func(v *NewVeterinarian) { v.Email = "not-an-email" }},
		{"missing specialization", func(v *NewVeterinarian) { v.Specialization = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			workers := countRows(t, store.Client(), "workers", "")

			vet := validVet("30")
			tt.mutate(&vet)

			err := store.InsertVeterinarian(context.Background(), vet)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, workers, countRows(t, store.Client(), "workers", ""))
		})
	}
}

func TestInsertVeterinarianOptionalContact(t *testing.T) {
	store := newTestStore(t)

	vet := validVet("31")
	vet.Email = ""
	vet.Address = ""
	require.NoError(t, store.InsertVeterinarian(context.Background(), vet))
	assert.Equal(t, 1, countRows(t, store.Client(), "veterinarians", "w_id = ?", "31"))
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		store := newTestStore(t)
		c := store.Client()
		err := inTransaction(ctx, c.conn, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM shops")
			return err
		})
		require.NoError(t, err)
		assert.Zero(t, countRows(t, c, "shops", ""))
	})

	t.Run("error rolls back", func(t *testing.T) {
		store := newTestStore(t)
		c := store.Client()
		boom := errors.New("boom")
		err := inTransaction(ctx, c.conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM shops"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, countRows(t, c, "shops", ""))
	})

	t.Run("panic rolls back", func(t *testing.T) {
		store := newTestStore(t)
		c := store.Client()
		assert.Panics(t, func() {
			_ = inTransaction(ctx, c.conn, func(tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, "DELETE FROM shops"); err != nil {
					return err
				}
				panic("boom")
			})
		})
		assert.Equal(t, 2, countRows(t, c, "shops", ""))
	})

	t.Run("connection reusable after rollback", func(t *testing.T) {
		store := newTestStore(t)
		_ = inTransaction(ctx, store.Client().conn, func(tx *sql.Tx) error {
			return errors.New("abort")
		})
		workers, err := store.ListWorkers(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, workers)
	})
}
