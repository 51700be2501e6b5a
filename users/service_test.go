package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
	"github.com/tareahub/go-tarea-server/users"
	"github.com/tareahub/go-tarea-server/users/repofake"
)

const testCost = 4 // min bcrypt cost, tests only

func newService(t *testing.T) (*users.Service, *repofake.FakeUserStore) {
	t.Helper()

	store := repofake.NewFakeUserStore()
	service, err := users.NewService(store, testCost)
	require.NoError(t, err)
	return service, store
}

func TestNewService(t *testing.T) {
	_, err := users.NewService(nil, testCost)
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the plaintext", func(t *testing.T) {
		service, store := newService(t)

		created, err := service.Create(ctx, users.CreateParams{
			Nombre:     "Ana",
			Correo:     "ana@x.com",
			Contrasena: "secreto",
		})
		require.NoError(t, err)

		stored, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotEqual(t, "secreto", stored.Contrasena)
		require.True(t, users.CheckPasswordHash("secreto", stored.Contrasena))
	})

	t.Run("rejects incomplete or malformed input", func(t *testing.T) {
		service, _ := newService(t)

		for name, params := range map[string]users.CreateParams{
			"blank nombre":  {Nombre: " ", Correo: "a@x.com", Contrasena: "p"},
			"blank correo":  {Nombre: "Ana", Correo: "", Contrasena: "p"},
			"no contrasena": {Nombre: "Ana", Correo: "a@x.com"},
			"correo sin @":  {Nombre: "Ana", Correo: "ana.x.com", Contrasena: "p"},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := service.Create(ctx, params)
				require.Equal(t, apperrors.StatusBadRequest, apperrors.StatusOf(err))
			})
		}
	})
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is not found", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.List(ctx)
		require.Equal(t, apperrors.StatusNotFound, apperrors.StatusOf(err))

		_, err = service.Get(ctx, 1)
		require.Equal(t, apperrors.StatusNotFound, apperrors.StatusOf(err))
	})

	t.Run("returns created users", func(t *testing.T) {
		service, _ := newService(t)

		created, err := service.Create(ctx, users.CreateParams{
			Nombre: "Ana", Correo: "ana@x.com", Contrasena: "p",
		})
		require.NoError(t, err)

		got, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "ana@x.com", got.Correo)

		all, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	created, err := service.Create(ctx, users.CreateParams{
		Nombre: "Ana", Correo: "ana@x.com", Contrasena: "vieja",
	})
	require.NoError(t, err)

	t.Run("empty contrasena keeps the stored hash", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, users.UpdateParams{Nombre: "Ana Maria"})
		require.NoError(t, err)
		require.Equal(t, "Ana Maria", updated.Nombre)
		require.True(t, users.CheckPasswordHash("vieja", updated.Contrasena))
	})

	t.Run("new contrasena is rehashed", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, users.UpdateParams{Contrasena: "nueva"})
		require.NoError(t, err)
		require.True(t, users.CheckPasswordHash("nueva", updated.Contrasena))
		require.False(t, users.CheckPasswordHash("vieja", updated.Contrasena))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	service, store := newService(t)

	created, err := service.Create(ctx, users.CreateParams{
		Nombre: "Ana", Correo: "ana@x.com", Contrasena: "p",
	})
	require.NoError(t, err)

	_, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)

	gone, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	_, err = service.Delete(ctx, created.ID)
	require.Equal(t, apperrors.StatusNotFound, apperrors.StatusOf(err))
}
