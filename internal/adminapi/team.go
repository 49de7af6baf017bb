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

type teamForm struct {
	Name        string
	Role        domain.LocaleText
	Bio         domain.LocaleText
	Order       int
	ImageData   []byte
	ContentType string
}

func registerTeamRoutes() {
	webserver.ApiGET("/team", listTeamMembers)
	webserver.ApiPOST("/team", createTeamMember)
	webserver.ApiPUT("/team/:id", updateTeamMember)
	webserver.ApiDELETE("/team/:id", deleteTeamMember)
}

// parseTeamForm decodes the multipart submission; role and bio arrive
// as JSON-encoded locale maps, like product descriptions do.
func parseTeamForm(c echo.Context) (teamForm, []string) {
	var form teamForm
	var errs []string

	form.Name = strings.TrimSpace(c.FormValue("name"))
	if form.Name == "" {
		errs = append(errs, "Name is required")
	}

	parseLocale := func(field, label string, dst *domain.LocaleText) {
		raw := strings.TrimSpace(c.FormValue(field))
		if raw == "" {
			errs = append(errs, label+" object is required")
			return
		}
		if err := jsoniter.UnmarshalFromString(raw, dst); err != nil {
			errs = append(errs, label+" must be valid JSON")
			return
		}
		if strings.TrimSpace(dst.En) == "" || strings.TrimSpace(dst.Fr) == "" || strings.TrimSpace(dst.Sq) == "" {
			errs = append(errs, label+" is required in all languages")
		}
	}
	parseLocale("role", "Role", &form.Role)
	parseLocale("bio", "Bio", &form.Bio)

	form.Order = cast.ToInt(c.FormValue("order"))

	if data, contentType, err := readFormFile(c, "image"); err == nil {
		form.ImageData = data
		form.ContentType = contentType
	}

	return form, errs
}

func listTeamMembers(c echo.Context) error {
	var members []domain.TeamMember
	if err := GetDB(c).Order("display_order ASC").Find(&members).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching team members", err.Error())
	}
	return ok(c, members)
}

func createTeamMember(c echo.Context) error {
	form, errs := parseTeamForm(c)
	if len(errs) > 0 {
		return failValidation(c, errs)
	}

	now := time.Now()
	member := domain.TeamMember{
		ID:          common.UUIDint64(),
		Name:        form.Name,
		Role:        form.Role,
		Bio:         form.Bio,
		Order:       form.Order,
		ImageData:   form.ImageData,
		ContentType: form.ContentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&member).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error creating team member", err.Error())
	}
	return created(c, "Team member created successfully", member)
}

func updateTeamMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid team member ID", nil)
	}
	var member domain.TeamMember
	if err := GetDB(c).Where("id = ?", id).First(&member).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Team member not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching team member", err.Error())
	}

	form, errs := parseTeamForm(c)
	if len(errs) > 0 {
		return failValidation(c, errs)
	}

	member.Name = form.Name
	member.Role = form.Role
	member.Bio = form.Bio
	member.Order = form.Order
	if len(form.ImageData) > 0 {
		member.ImageData = form.ImageData
		member.ContentType = form.ContentType
	}
	member.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&member).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error updating team member", err.Error())
	}
	return okMessage(c, "Team member updated successfully", member)
}

func deleteTeamMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid team member ID", nil)
	}
	var member domain.TeamMember
	if err := GetDB(c).Where("id = ?", id).First(&member).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Team member not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching team member", err.Error())
	}
	if err := GetDB(c).Delete(&domain.TeamMember{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error deleting team member", err.Error())
	}
	return okMessage(c, "Team member deleted successfully", map[string]interface{}{"id": id})
}
