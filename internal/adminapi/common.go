package adminapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stitchworks/storefront/config"
	"github.com/stitchworks/storefront/internal/webserver"
	"github.com/stitchworks/storefront/pkg/mailer"
	"gorm.io/gorm"
)

// Pagination mirrors the wire shape consumed by the dashboard.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.DBContextKey).(*gorm.DB)
}

func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(webserver.ConfigContextKey).(*config.AppConfig)
}

func GetMailer(c echo.Context) *mailer.Mailer {
	m, _ := c.Get(webserver.MailerContextKey).(*mailer.Mailer)
	return m
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func okMessage(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func paged(c echo.Context, data interface{}, total int64, page, limit int) error {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
		"pagination": Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	body := map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return c.JSON(status, body)
}

// failValidation returns the itemized 400 the forms render inline.
func failValidation(c echo.Context, errs []string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"errors":  errs,
	})
}

// parsePagination reads page/limit with a per-endpoint default limit.
// Values are clamped to keep a single response bounded.
func parsePagination(c echo.Context, defaultLimit int) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	limit := defaultLimit
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// searchLike appends a case-insensitive substring predicate over the
// given columns, OR-joined. Postgres gets ILIKE; other drivers fall
// back to LOWER() LIKE so the same code runs under sqlite in tests.
func searchLike(db *gorm.DB, q string, cols ...string) *gorm.DB {
	if q == "" || len(cols) == 0 {
		return db
	}
	pg := strings.EqualFold(db.Name(), "postgres")
	conds := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		if pg {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, "%"+q+"%")
		} else {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, "%"+strings.ToLower(q)+"%")
		}
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}

// readFormFile loads a multipart file field fully into memory. The
// request body is already bounded by the body-limit middleware.
func readFormFile(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	src, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}
