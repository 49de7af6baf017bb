package adminapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stitchworks/storefront/internal/domain"
	"github.com/stitchworks/storefront/pkg/common"
)

func teamFields(name string, order string) map[string]string {
	return map[string]string{
		"name":  name,
		"role":  `{"en":"Founder","fr":"Fondatrice","sq":"Themeluese"}`,
		"bio":   `{"en":"Embroiders since 1998","fr":"Brode depuis 1998","sq":"Qendis qe nga 1998"}`,
		"order": order,
	}
}

func TestTeamCreateAndListOrder(t *testing.T) {
	db := newTestDB(t)

	for _, m := range []struct{ name, order string }{
		{"Third", "3"}, {"First", "1"}, {"Second", "2"},
	} {
		body, contentType := multipartBody(t, teamFields(m.name, m.order), []byte{1, 2}, "image/png")
		c, rec := newTestContext(t, db, http.MethodPost, "/api/team", body, contentType)
		if err := createTeamMember(c); err != nil {
			t.Fatalf("createTeamMember: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	c, rec := newTestContext(t, db, http.MethodGet, "/api/team", nil, "")
	if err := listTeamMembers(c); err != nil {
		t.Fatalf("listTeamMembers: %v", err)
	}
	var rows []domain.TeamMember
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	// listing follows the explicit order field, not creation time
	for i, want := range []string{"First", "Second", "Third"} {
		if rows[i].Name != want {
			t.Fatalf("position %d = %q, want %q", i, rows[i].Name, want)
		}
	}
	if rows[0].Role.Sq != "Themeluese" {
		t.Fatalf("role.sq = %q", rows[0].Role.Sq)
	}
}

func TestTeamValidation(t *testing.T) {
	db := newTestDB(t)
	fields := teamFields("", "1")
	fields["role"] = `{"en":"Founder","fr":"","sq":"Themeluese"}`
	fields["bio"] = `not json`

	body, contentType := multipartBody(t, fields, nil, "")
	c, rec := newTestContext(t, db, http.MethodPost, "/api/team", body, contentType)
	if err := createTeamMember(c); err != nil {
		t.Fatalf("createTeamMember: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	errs := decodeResponse(t, rec).Errors
	if len(errs) != 3 {
		t.Fatalf("errors = %v, want 3", errs)
	}
}

func TestTeamUpdateKeepsImageWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	member := domain.TeamMember{
		ID:          common.UUIDint64(),
		Name:        "Old",
		Role:        domain.LocaleText{En: "Founder", Fr: "Fondatrice", Sq: "Themeluese"},
		Bio:         domain.LocaleText{En: "bio", Fr: "bio", Sq: "bio"},
		ImageData:   []byte{5, 5, 5},
		ContentType: "image/png",
		Order:       1,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	idStr := strconv.FormatInt(member.ID, 10)
	body, contentType := multipartBody(t, teamFields("New Name", "2"), nil, "")
	c, rec := newTestContext(t, db, http.MethodPut, "/api/team/"+idStr, body, contentType)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	if err := updateTeamMember(c); err != nil {
		t.Fatalf("updateTeamMember: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var reloaded domain.TeamMember
	if err := db.First(&reloaded, member.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name != "New Name" || reloaded.Order != 2 {
		t.Fatalf("update not applied: %+v", reloaded)
	}
	if len(reloaded.ImageData) != 3 {
		t.Fatal("image lost on update without file")
	}
}

func TestTeamDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	c, rec := newTestContext(t, db, http.MethodDelete, "/api/team/99", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := deleteTeamMember(c); err != nil {
		t.Fatalf("deleteTeamMember: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
