package service

import (
	"context"
	"testing"

	"parakeet/internal/domain"
	"parakeet/internal/repository"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store *repository.MemoryStore
	tx    *repository.MemoryTx
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	return testEnv{store: store, tx: repository.NewMemoryTx(store)}
}

func (e testEnv) addCategory(t *testing.T, name, slug string) domain.Category {
	t.Helper()
	category, err := e.store.CreateCategory(context.Background(), domain.Category{Name: name, Slug: slug})
	require.NoError(t, err)
	return category
}

func (e testEnv) addProduct(t *testing.T, p domain.Product) domain.Product {
	t.Helper()
	if p.Name == "" {
		p.Name = "Workflow Automation"
	}
	if p.Type == "" {
		p.Type = domain.ProductTypeService
	}
	product, err := e.store.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	return product
}

func (e testEnv) addUser(t *testing.T, u domain.User) domain.User {
	t.Helper()
	user, err := e.store.CreateUser(context.Background(), u)
	require.NoError(t, err)
	return user
}
