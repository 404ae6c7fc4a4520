package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"souq/internal/auth"
	apperrors "souq/internal/errors"
	"souq/internal/model"
	"souq/internal/service"
	"souq/internal/upload"
)

// ProductHandler handles catalog, seller listing, and moderation endpoints.
type ProductHandler struct {
	productService service.ProductService
	saver          *upload.Saver
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, saver *upload.Saver) *ProductHandler {
	return &ProductHandler{productService: productService, saver: saver}
}

// PublicList godoc
// @Summary List approved products for the storefront
// @Tags product
// @Produce json
// @Success 200 {object} apperrors.Envelope
// @Router /product/list [get]
// @Router /product/approved [get]
func (h *ProductHandler) PublicList(c echo.Context) error {
	products, err := h.productService.PublicList(c.Request().Context())
	if err != nil {
		return failFromError(c, err, "Error fetching products")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"products": products}))
}

// GetByID godoc
// @Summary Get a single product with seller and approver info
// @Tags product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /product/product/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid product ID format"))
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return failFromError(c, err, "Error fetching product details")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"product": product}))
}

// Add godoc
// @Summary Add a product listing
// @Description Multipart form with up to 4 images. The listing always starts pending.
// @Tags product
// @Accept multipart/form-data
// @Produce json
// @Param token header string true "Session token"
// @Success 201 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /product/seller/add [post]
func (h *ProductHandler) Add(c echo.Context) error {
	claims := auth.ClaimsFrom(c)

	name := c.FormValue("name")
	description := c.FormValue("description")
	priceRaw := c.FormValue("price")
	category := c.FormValue("category")
	if name == "" || description == "" || priceRaw == "" || category == "" {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Name, description, price, and category are required"))
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid price"))
	}

	images, err := h.formImages(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Fail("Error uploading images"))
	}

	in := service.CreateProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		SubCategory: c.FormValue("subCategory"),
		Sizes:       parseSizes(c.FormValue("sizes")),
		Bestseller:  c.FormValue("bestseller") == "true",
		Condition:   model.Condition(c.FormValue("condition")),
		Images:      images,
	}

	product, err := h.productService.Create(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return failFromError(c, err, "Error adding product")
	}
	return c.JSON(http.StatusCreated, apperrors.OK("Product Added Successfully", apperrors.Envelope{"product": product}))
}

// SellerProducts godoc
// @Summary List the caller's own products regardless of status
// @Tags product
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /product/seller/products [get]
func (h *ProductHandler) SellerProducts(c echo.Context) error {
	claims := auth.ClaimsFrom(c)

	products, err := h.productService.SellerProducts(c.Request().Context(), claims.UserID)
	if err != nil {
		return failFromError(c, err, "Error fetching seller products")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"products": products}))
}

// UpdateOwn godoc
// @Summary Update the caller's own product
// @Description Editing an approved product resets its status to pending.
// @Tags product
// @Accept multipart/form-data
// @Produce json
// @Param token header string true "Session token"
// @Param productId path string true "Product ID"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /product/seller/update/{productId} [put]
func (h *ProductHandler) UpdateOwn(c echo.Context) error {
	claims := auth.ClaimsFrom(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid product ID format"))
	}

	in := service.UpdateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		SubCategory: c.FormValue("subCategory"),
		Sizes:       parseSizes(c.FormValue("sizes")),
		Condition:   model.Condition(c.FormValue("condition")),
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid price"))
		}
		in.Price = &price
	}

	images, err := h.formImages(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Fail("Error uploading images"))
	}
	in.Images = images

	product, err := h.productService.UpdateByOwner(c.Request().Context(), claims.UserID, productID, in)
	if err != nil {
		return failFromError(c, err, "Error updating product")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Product updated successfully", apperrors.Envelope{"product": product}))
}

// DeleteOwn godoc
// @Summary Delete the caller's own product
// @Tags product
// @Produce json
// @Param token header string true "Session token"
// @Param productId path string true "Product ID"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /product/seller/delete/{productId} [delete]
func (h *ProductHandler) DeleteOwn(c echo.Context) error {
	claims := auth.ClaimsFrom(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid product ID format"))
	}

	if err := h.productService.DeleteByOwner(c.Request().Context(), claims.UserID, productID); err != nil {
		return failFromError(c, err, "Error deleting product")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Product deleted successfully", nil))
}

// AdminPending godoc
// @Summary List products awaiting review
// @Tags product
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} apperrors.Envelope
// @Failure 403 {object} apperrors.Envelope
// @Router /product/admin/pending [get]
func (h *ProductHandler) AdminPending(c echo.Context) error {
	products, err := h.productService.AdminList(c.Request().Context(), string(model.ApprovalPending))
	if err != nil {
		return failFromError(c, err, "Error fetching pending products")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"products": products}))
}

// AdminList godoc
// @Summary List products by approval status
// @Tags product
// @Produce json
// @Param token header string true "Session token"
// @Param status path string true "all, pending, approved, or rejected"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Router /product/admin/{status} [get]
func (h *ProductHandler) AdminList(c echo.Context) error {
	products, err := h.productService.AdminList(c.Request().Context(), c.Param("status"))
	if err != nil {
		return failFromError(c, err, "Error fetching products")
	}
	return c.JSON(http.StatusOK, apperrors.OK("", apperrors.Envelope{"products": products}))
}

// StatusRequest carries an admin approval decision.
type StatusRequest struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejectionReason"`
}

// UpdateStatus godoc
// @Summary Approve or reject a pending product
// @Tags product
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param productId path string true "Product ID"
// @Param request body StatusRequest true "Decision"
// @Success 200 {object} apperrors.Envelope
// @Failure 400 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /product/admin/product/{productId}/status [put]
func (h *ProductHandler) UpdateStatus(c echo.Context) error {
	claims := auth.ClaimsFrom(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid product ID format"))
	}

	var req StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.UpdateStatus(
		c.Request().Context(),
		claims.UserID,
		productID,
		model.ApprovalStatus(req.Status),
		req.RejectionReason,
	)
	if err != nil {
		return failFromError(c, err, "Error updating product status")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Product "+req.Status+" successfully", apperrors.Envelope{"product": product}))
}

// AdminDelete godoc
// @Summary Delete any product
// @Tags product
// @Produce json
// @Param token header string true "Session token"
// @Param productId path string true "Product ID"
// @Success 200 {object} apperrors.Envelope
// @Failure 404 {object} apperrors.Envelope
// @Router /product/admin/product/{productId} [delete]
func (h *ProductHandler) AdminDelete(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid product ID format"))
	}

	if err := h.productService.AdminDelete(c.Request().Context(), productID); err != nil {
		return failFromError(c, err, "Error deleting product")
	}
	return c.JSON(http.StatusOK, apperrors.OK("Product Removed", nil))
}

// formImages stores up to MaxProductImages uploaded under the "images"
// field and returns their paths. A request without images is fine.
func (h *ProductHandler) formImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	return h.saver.SaveAll("images", files, upload.MaxProductImages)
}

// parseSizes decodes the sizes form field, sent as a JSON string array.
func parseSizes(raw string) []string {
	if raw == "" {
		return nil
	}
	var sizes []string
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return nil
	}
	return sizes
}
