package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/shared/storage"
)

// ProductUsecase defines the interface for inventory operations. Every
// operation on an existing product applies the ownership guard: the product
// must exist (NotFound otherwise) and must belong to the caller.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, ownerID string, params CreateProductParams) (*model.Product, error)
	ListProducts(ctx context.Context, ownerID string) ([]*model.Product, error)
	GetProduct(ctx context.Context, ownerID, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, ownerID, id string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, ownerID, id string) error
}

// CreateProductParams defines the fields for a new product.
type CreateProductParams struct {
	Name        string
	SKU         string
	Category    string
	Quantity    string
	Price       string
	Description string
	Image       *model.ProductImage
}

// UpdateProductParams defines the optional fields for a product update.
// Only non-nil fields are applied.
type UpdateProductParams struct {
	Name        *string
	Category    *string
	Quantity    *string
	Price       *string
	Description *string
	Image       *model.ProductImage
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("user not authorized")
	ErrImageNotRemoved = errors.New("failed to remove product image")
)

type productUsecase struct {
	productRepo repository.ProductRepository
	uploader    storage.Uploader
}

// NewProductUsecase creates a new instance of ProductUsecase.
func NewProductUsecase(productRepo repository.ProductRepository, uploader storage.Uploader) ProductUsecase {
	return &productUsecase{
		productRepo: productRepo,
		uploader:    uploader,
	}
}

func (u *productUsecase) CreateProduct(
	ctx context.Context,
	ownerID string,
	params CreateProductParams,
) (*model.Product, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		UserID:      ownerObjectID,
		Name:        params.Name,
		SKU:         params.SKU,
		Category:    params.Category,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Description: params.Description,
	}
	if params.Image != nil {
		product.Image = *params.Image
	}

	return u.productRepo.CreateProduct(ctx, product)
}

func (u *productUsecase) ListProducts(ctx context.Context, ownerID string) ([]*model.Product, error) {
	return u.productRepo.ListProductsByUser(ctx, ownerID)
}

func (u *productUsecase) GetProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	return u.guardedProduct(ctx, ownerID, id)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	ownerID, id string,
	params UpdateProductParams,
) (*model.Product, error) {
	product, err := u.guardedProduct(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// A replacement image supersedes the stored blob.
	if params.Image != nil && product.Image.PublicID != "" {
		if err := u.uploader.Remove(ctx, product.Image.PublicID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImageNotRemoved, err)
		}
	}

	updated, err := u.productRepo.UpdateProduct(ctx, id, repository.UpdateProductParams{
		Name:        params.Name,
		Category:    params.Category,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Description: params.Description,
		Image:       params.Image,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return updated, nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, ownerID, id string) error {
	product, err := u.guardedProduct(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if product.Image.PublicID != "" {
		if err := u.uploader.Remove(ctx, product.Image.PublicID); err != nil {
			return fmt.Errorf("%w: %w", ErrImageNotRemoved, err)
		}
	}

	if err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}

		return err
	}

	return nil
}

// guardedProduct loads a product and applies the ownership rule. The
// existence check runs first so a missing product never reports an
// authorization failure.
func (u *productUsecase) guardedProduct(ctx context.Context, ownerID, id string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	if product.UserID.Hex() != ownerID {
		return nil, ErrNotProductOwner
	}

	return product, nil
}
