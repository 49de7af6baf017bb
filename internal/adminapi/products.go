package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/stitchworks/storefront/internal/domain"
	"github.com/stitchworks/storefront/internal/webserver"
	"github.com/stitchworks/storefront/pkg/common"
)

const defaultProductPageSize = 12

// productForm carries the decoded multipart submission from the
// dashboard product editor.
type productForm struct {
	Name           string
	Description    domain.LocaleText
	Price          float64
	Category       string
	EmbroideryType string
	Stock          int
	ImageURL       string
	ImageData      []byte
	ContentType    string
}

// registerProductRoutes registers catalog CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/categories/list", listProductCategories)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// parseProductForm decodes and validates the multipart payload.
// requireImage is true on create: the canonical contract stores the
// product image inline, so the first submission must carry a file.
func parseProductForm(c echo.Context, requireImage bool) (productForm, []string) {
	var form productForm
	var errs []string

	form.Name = strings.TrimSpace(c.FormValue("name"))
	if len(form.Name) < 3 {
		errs = append(errs, "Product name must be at least 3 characters")
	}

	descRaw := strings.TrimSpace(c.FormValue("description"))
	if descRaw == "" {
		errs = append(errs, "Description object is required")
	} else if err := jsoniter.UnmarshalFromString(descRaw, &form.Description); err != nil {
		errs = append(errs, "Description must be valid JSON")
	} else {
		if len(strings.TrimSpace(form.Description.En)) < 10 {
			errs = append(errs, "English description must be at least 10 characters")
		}
		if len(strings.TrimSpace(form.Description.Fr)) < 10 {
			errs = append(errs, "French description must be at least 10 characters")
		}
		if len(strings.TrimSpace(form.Description.Sq)) < 10 {
			errs = append(errs, "Albanian description must be at least 10 characters")
		}
	}

	price, err := cast.ToFloat64E(c.FormValue("price"))
	if err != nil || price <= 0 {
		errs = append(errs, "Price must be a positive number")
	}
	form.Price = price

	form.Category = strings.TrimSpace(c.FormValue("category"))
	if form.Category == "" {
		errs = append(errs, "Category is required")
	}

	form.EmbroideryType = strings.TrimSpace(c.FormValue("embroideryType"))
	if form.EmbroideryType == "" {
		form.EmbroideryType = domain.EmbroideryMachine
	}
	switch form.EmbroideryType {
	case domain.EmbroideryMachine, domain.EmbroideryHand, domain.EmbroideryDigital:
	default:
		errs = append(errs, "Embroidery type must be Machine, Hand or Digital")
	}

	form.Stock = cast.ToInt(c.FormValue("inStock"))
	form.ImageURL = strings.TrimSpace(c.FormValue("imageUrl"))

	data, contentType, ferr := readFormFile(c, "image")
	if ferr == nil {
		form.ImageData = data
		form.ContentType = contentType
	} else if requireImage {
		errs = append(errs, "Image file is required")
	}

	return form, errs
}

func listProducts(c echo.Context) error {
	page, limit := parsePagination(c, defaultProductPageSize)

	db := GetDB(c).Model(&domain.Product{})

	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		db = searchLike(db, q,
			"name", "description_en", "description_fr", "description_sq")
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		db = db.Where("category = ?", category)
	}
	switch c.QueryParam("inStock") {
	case "true":
		db = db.Where("stock > 0")
	case "false":
		db = db.Where("stock = 0")
	}

	order := "created_at DESC"
	switch c.QueryParam("sortBy") {
	case "price-asc":
		order = "price ASC"
	case "price-desc":
		order = "price DESC"
	case "name":
		order = "name ASC"
	case "newest", "":
		// default
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(order).Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching products", err.Error())
	}

	return paged(c, rows, total, page, limit)
}

func listProductCategories(c echo.Context) error {
	var categories []string
	err := GetDB(c).Model(&domain.Product{}).
		Distinct("category").Order("category").Pluck("category", &categories).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching categories", err.Error())
	}
	return ok(c, categories)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching product", err.Error())
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	form, errs := parseProductForm(c, true)
	if len(errs) > 0 {
		return failValidation(c, errs)
	}

	now := time.Now()
	p := domain.Product{
		ID:             common.UUIDint64(),
		Name:           form.Name,
		Description:    form.Description,
		Price:          form.Price,
		Category:       form.Category,
		EmbroideryType: form.EmbroideryType,
		Stock:          form.Stock,
		ImageURL:       form.ImageURL,
		ImageData:      form.ImageData,
		ContentType:    form.ContentType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error creating product", err.Error())
	}
	return created(c, "Product created successfully", p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching product", err.Error())
	}

	// Image is optional on update: the stored binary is kept when the
	// form carries no file.
	form, errs := parseProductForm(c, false)
	if len(errs) > 0 {
		return failValidation(c, errs)
	}

	p.Name = form.Name
	p.Description = form.Description
	p.Price = form.Price
	p.Category = form.Category
	p.EmbroideryType = form.EmbroideryType
	p.Stock = form.Stock
	p.ImageURL = form.ImageURL
	if len(form.ImageData) > 0 {
		p.ImageData = form.ImageData
		p.ContentType = form.ContentType
	}
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error updating product", err.Error())
	}
	return okMessage(c, "Product updated successfully", p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching product", err.Error())
	}
	if err := GetDB(c).Delete(&domain.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error deleting product", err.Error())
	}
	return okMessage(c, "Product deleted successfully", p)
}
