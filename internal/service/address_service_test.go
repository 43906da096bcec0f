package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestAddressFirstBecomesDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAddressService(repository.NewAddressRepo(db))
	user := seedUser(t, db, "addr@example.com")

	first, err := svc.Create(user.ID, &model.Address{
		Recipient: "A", Line1: "1 First St", City: "Town", PostalCode: "11111", Country: "US",
	})
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := svc.Create(user.ID, &model.Address{
		Recipient: "A", Line1: "2 Second St", City: "Town", PostalCode: "22222", Country: "US",
	})
	require.NoError(t, err)
	require.False(t, second.IsDefault)
}

func TestAddressSetDefaultIsExclusive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAddressService(repository.NewAddressRepo(db))
	user := seedUser(t, db, "addr2@example.com")

	first, err := svc.Create(user.ID, &model.Address{
		Recipient: "A", Line1: "1 First St", City: "Town", PostalCode: "11111", Country: "US",
	})
	require.NoError(t, err)
	second, err := svc.Create(user.ID, &model.Address{
		Recipient: "A", Line1: "2 Second St", City: "Town", PostalCode: "22222", Country: "US",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(user.ID, second.ID))

	addresses, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	for _, a := range addresses {
		require.Equal(t, a.ID == second.ID, a.IsDefault)
	}
	_ = first
}

func TestAddressOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAddressService(repository.NewAddressRepo(db))
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	address, err := svc.Create(owner.ID, &model.Address{
		Recipient: "A", Line1: "1 First St", City: "Town", PostalCode: "11111", Country: "US",
	})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, address.ID, &model.Address{
		Recipient: "B", Line1: "Hacked", City: "Town", PostalCode: "11111", Country: "US",
	})
	require.ErrorIs(t, err, ErrAddressNotFound)

	require.ErrorIs(t, svc.Delete(other.ID, address.ID), ErrAddressNotFound)
	require.NoError(t, svc.Delete(owner.ID, address.ID))
}

func TestAddressValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAddressService(repository.NewAddressRepo(db))
	user := seedUser(t, db, "addr3@example.com")

	_, err := svc.Create(user.ID, &model.Address{Recipient: "A"})
	require.ErrorIs(t, err, ErrValidation)
}
