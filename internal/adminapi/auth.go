package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stitchworks/storefront/internal/domain"
	"github.com/stitchworks/storefront/internal/webserver"
	"github.com/stitchworks/storefront/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/auth/login", login)
}

// login verifies operator credentials and issues an HS256 bearer token.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var opr domain.SysOpr
	err := GetDB(c).
		Where("username = ? AND status = ?", strings.TrimSpace(payload.Username), common.ENABLED).
		First(&opr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Error during login", err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	cfg := GetConfig(c)
	expire := time.Duration(cfg.Web.JwtExpireHr) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	expiresAt := time.Now().Add(expire)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   opr.Username,
		"uid":   opr.ID,
		"level": opr.Level,
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Error issuing token", err.Error())
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).Update("last_login", time.Now())

	return ok(c, map[string]interface{}{
		"token":      signed,
		"expires_at": expiresAt,
		"username":   opr.Username,
		"level":      opr.Level,
	})
}
