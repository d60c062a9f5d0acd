package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*model.Product)}
}

func (r *ProductRepository) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = bson.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	clone := *product
	r.products[product.ID.Hex()] = &clone

	return product, nil
}

func (r *ProductRepository) GetProduct(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	clone := *product
	return &clone, nil
}

func (r *ProductRepository) ListProductsByUser(_ context.Context, userID string) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*model.Product
	for _, product := range r.products {
		if product.UserID.Hex() == userID {
			clone := *product
			products = append(products, &clone)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *ProductRepository) UpdateProduct(
	_ context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Category != nil {
		product.Category = *params.Category
	}
	if params.Quantity != nil {
		product.Quantity = *params.Quantity
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Image != nil {
		product.Image = *params.Image
	}
	product.UpdatedAt = time.Now()

	clone := *product
	return &clone, nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}

	delete(r.products, id)
	return nil
}
