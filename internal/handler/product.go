package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/payload"
	"github.com/prasitsang/stockroom-api/internal/usecase"
	"github.com/prasitsang/stockroom-api/shared/storage"
	"github.com/prasitsang/stockroom-api/shared/validator"
)

// maxUploadSize bounds product image uploads.
const maxUploadSize = 10 << 20

// ProductHandler serves the inventory endpoints. Create and update accept
// multipart forms so an image can travel with the fields.
type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	uploader       storage.Uploader
	validator      *validator.Validator
	logger         *zerolog.Logger
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(
	productUsecase usecase.ProductUsecase,
	uploader storage.Uploader,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		uploader:       uploader,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := payload.CreateProductRequest{
		Name:        r.FormValue("name"),
		SKU:         r.FormValue("sku"),
		Category:    r.FormValue("category"),
		Quantity:    r.FormValue("quantity"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	image, err := h.uploadImage(r)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to upload product image")
		respondError(w, http.StatusInternalServerError, "image could not be uploaded")
		return
	}

	user := CurrentUser(r.Context())
	product, err := h.productUsecase.CreateProduct(r.Context(), user.ID.Hex(), usecase.CreateProductParams{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create product")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	products, err := h.productUsecase.ListProducts(r.Context(), user.ID.Hex())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list products")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if products == nil {
		products = []*model.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	product, err := h.productUsecase.GetProduct(r.Context(), user.ID.Hex(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondProductError(w, err, "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := payload.UpdateProductRequest{
		Name:        formValue(r, "name"),
		Category:    formValue(r, "category"),
		Quantity:    formValue(r, "quantity"),
		Price:       formValue(r, "price"),
		Description: formValue(r, "description"),
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	image, err := h.uploadImage(r)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to upload product image")
		respondError(w, http.StatusInternalServerError, "image could not be uploaded")
		return
	}

	user := CurrentUser(r.Context())
	product, err := h.productUsecase.UpdateProduct(r.Context(), user.ID.Hex(), chi.URLParam(r, "id"),
		usecase.UpdateProductParams{
			Name:        req.Name,
			Category:    req.Category,
			Quantity:    req.Quantity,
			Price:       req.Price,
			Description: req.Description,
			Image:       image,
		})
	if err != nil {
		h.respondProductError(w, err, "failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	err := h.productUsecase.DeleteProduct(r.Context(), user.ID.Hex(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondProductError(w, err, "failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "product deleted successfully"})
}

// uploadImage stores the optional "image" part and returns its descriptor,
// or nil when the request carries no image.
func (h *ProductHandler) uploadImage(r *http.Request) (*model.ProductImage, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, err
	}
	defer file.Close()

	result, err := h.uploader.Upload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		return nil, err
	}

	return &model.ProductImage{
		FileName: result.FileName,
		FilePath: result.FilePath,
		FileType: result.FileType,
		FileSize: result.FileSize,
		PublicID: result.PublicID,
	}, nil
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		respondError(w, http.StatusNotFound, usecase.ErrProductNotFound.Error())
	case errors.Is(err, usecase.ErrNotProductOwner):
		respondError(w, http.StatusUnauthorized, usecase.ErrNotProductOwner.Error())
	case errors.Is(err, usecase.ErrImageNotRemoved):
		h.logger.Error().Err(err).Msg(logMsg)
		respondError(w, http.StatusInternalServerError, usecase.ErrImageNotRemoved.Error())
	default:
		h.logger.Error().Err(err).Msg(logMsg)
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// formValue distinguishes an absent form key from an empty one so partial
// updates only touch supplied fields.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}
