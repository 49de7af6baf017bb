package adminapi

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stitchworks/storefront/internal/domain"
	"github.com/stitchworks/storefront/internal/webserver"
	"github.com/stitchworks/storefront/pkg/common"
)

const defaultContactPageSize = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

func registerContactRoutes() {
	webserver.ApiPOST("/contacts", createContact)
	webserver.ApiGET("/contacts", listContacts)
	webserver.ApiGET("/contacts/:id", getContact)
	webserver.ApiDELETE("/contacts/:id", deleteContact)
}

func validateContact(p contactPayload) []string {
	var errs []string
	if len(strings.TrimSpace(p.Name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, "Valid email is required")
	}
	if len(strings.TrimSpace(p.Phone)) < 10 {
		errs = append(errs, "Valid phone number is required")
	}
	if len(strings.TrimSpace(p.Message)) < 10 {
		errs = append(errs, "Message must be at least 10 characters")
	}
	return errs
}

func createContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse contact form", nil)
	}
	if errs := validateContact(payload); len(errs) > 0 {
		return failValidation(c, errs)
	}

	now := time.Now()
	contact := domain.Contact{
		ID:        common.UUIDint64(),
		Name:      strings.TrimSpace(payload.Name),
		Email:     strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:     strings.TrimSpace(payload.Phone),
		Message:   strings.TrimSpace(payload.Message),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&contact).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error submitting contact form", err.Error())
	}

	// Notify the shop inbox when SMTP is configured. Best effort: a
	// mail failure never fails the submission.
	if m := GetMailer(c); m.Enabled() {
		go func(ct domain.Contact) {
			if err := m.SendContactNotice(ct.Name, ct.Email, ct.Phone, ct.Message); err != nil {
				zap.L().Warn("contact notification mail failed",
					zap.Int64("contact_id", ct.ID), zap.Error(err))
			}
		}(contact)
	}

	return created(c, "Thank you! Your message has been received successfully. We will contact you soon.", contact)
}

func listContacts(c echo.Context) error {
	page, limit := parsePagination(c, defaultContactPageSize)

	db := GetDB(c).Model(&domain.Contact{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching contacts", err.Error())
	}

	var contacts []domain.Contact
	if err := db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&contacts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching contacts", err.Error())
	}
	return paged(c, contacts, total, page, limit)
}

func getContact(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID", nil)
	}
	var contact domain.Contact
	if err := GetDB(c).Where("id = ?", id).First(&contact).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Contact not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching contact", err.Error())
	}
	return ok(c, contact)
}

func deleteContact(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID", nil)
	}
	var contact domain.Contact
	if err := GetDB(c).Where("id = ?", id).First(&contact).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Contact not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error fetching contact", err.Error())
	}
	if err := GetDB(c).Delete(&domain.Contact{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error deleting contact", err.Error())
	}
	return okMessage(c, "Contact deleted successfully", contact)
}
