package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"laxin/internal/domain"
	"laxin/internal/http/middleware"
	"laxin/internal/permissions"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
)

// exportLimit caps the roster size; the export is a convenience document,
// not a bulk dump.
const exportLimit = 500

// ExportUsers handles GET /api/users/export: a PDF roster of the caller's
// user scope, same visibility rules as the list endpoint.
func (a API) ExportUsers(c *gin.Context) {
	act, err := permissions.ForUser(middleware.CurrentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}

	col := act.UserScope(a.Repo.Collection()).OrderBy("id", true)
	users, err := col.Slice(c.Request.Context(), 0, exportLimit)
	if err != nil {
		a.respondError(c, err)
		return
	}

	doc, filename, err := buildUserRosterPDF(users)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func buildUserRosterPDF(users []domain.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("User Roster", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "USER ROSTER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(20, 7, "ID", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Phone", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Name", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Role", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = "-"
		}
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", u.ID), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, u.Phone, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, u.Role.String(), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("users_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
