package payload

// CreateProductRequest carries the multipart form fields for a new product.
// The image part is handled separately by the upload collaborator.
type CreateProductRequest struct {
	Name        string `json:"name"        validate:"required"`
	SKU         string `json:"sku"`
	Category    string `json:"category"    validate:"required"`
	Quantity    string `json:"quantity"    validate:"required"`
	Price       string `json:"price"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateProductRequest carries a partial product update.
type UpdateProductRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1"`
	Category    *string `json:"category"    validate:"omitempty,min=1"`
	Quantity    *string `json:"quantity"`
	Price       *string `json:"price"`
	Description *string `json:"description"`
}
