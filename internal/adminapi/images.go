package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/stitchworks/storefront/internal/domain"
	"github.com/stitchworks/storefront/internal/webserver"
	"github.com/stitchworks/storefront/pkg/common"
)

// siteImageMeta is the listing shape: everything but the binary.
type siteImageMeta struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func registerImageRoutes() {
	webserver.ApiPOST("/images/upload", uploadImage)
	webserver.ApiGET("/images/location/:location", getImageByLocation)
	webserver.ApiGET("/images/all", listImages)
	webserver.ApiDELETE("/images/:id", deleteImage)
}

// uploadImage upserts by location: a slot holds exactly one current
// image, so uploading to an occupied slot replaces it in place.
func uploadImage(c echo.Context) error {
	location := strings.TrimSpace(c.FormValue("location"))
	if location == "" {
		return failValidation(c, []string{"Location is required"})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = location
	}

	data, contentType, err := readFormFile(c, "image")
	if err != nil {
		return failValidation(c, []string{"Image file is required"})
	}

	db := GetDB(c)
	now := time.Now()

	var img domain.SiteImage
	err = db.Where("location = ?", location).First(&img).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		img = domain.SiteImage{
			ID:          common.UUIDint64(),
			Name:        name,
			Location:    location,
			ImageData:   data,
			ContentType: contentType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.Create(&img).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Upload failed", err.Error())
		}
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Upload failed", err.Error())
	default:
		img.Name = name
		img.ImageData = data
		img.ContentType = contentType
		img.UpdatedAt = now
		if err := db.Save(&img).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Upload failed", err.Error())
		}
	}

	return okMessage(c, "Image uploaded successfully", siteImageMeta{
		ID:          img.ID,
		Name:        img.Name,
		Location:    img.Location,
		ContentType: img.ContentType,
		CreatedAt:   img.CreatedAt,
		UpdatedAt:   img.UpdatedAt,
	})
}

func getImageByLocation(c echo.Context) error {
	location := c.Param("location")
	var img domain.SiteImage
	err := GetDB(c).Where("location = ?", location).Order("updated_at DESC").First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching image", err.Error())
	}
	return ok(c, img)
}

func listImages(c echo.Context) error {
	var images []siteImageMeta
	err := GetDB(c).Model(&domain.SiteImage{}).
		Select("id", "name", "location", "content_type", "created_at", "updated_at").
		Order("updated_at DESC").Find(&images).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching images", err.Error())
	}
	return ok(c, images)
}

func deleteImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID", nil)
	}
	var img domain.SiteImage
	if err := GetDB(c).Where("id = ?", id).First(&img).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Image not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching image", err.Error())
	}
	if err := GetDB(c).Delete(&domain.SiteImage{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error deleting image", err.Error())
	}
	return okMessage(c, "Image deleted successfully", map[string]interface{}{"id": id})
}
