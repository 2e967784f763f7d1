package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"laxin/internal/auth"
	"laxin/internal/domain"
	"laxin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testUsers = map[int64]domain.User{
	1: {ID: 1, Phone: "13800000001", Name: "root", Role: domain.RoleAdmin},
	2: {ID: 2, Phone: "13800000002", Name: "staff", Role: domain.RoleEmployee},
	7: {ID: 7, Phone: "13800000007", Name: "cust", Role: domain.RoleRegular},
}

type gateRig struct {
	api     API
	engine  *gin.Engine
	codec   auth.Codec
	invoked *bool
}

func newGateRig(t *testing.T) *gateRig {
	t.Helper()
	codec := auth.NewCodec([]byte("gate-secret"), time.Hour)
	invoked := false

	rig := &gateRig{
		api:     API{Codec: codec},
		codec:   codec,
		invoked: &invoked,
	}

	r := gin.New()
	r.Use(middleware.Identity(codec, func(_ *gin.Context, id int64) (domain.User, error) {
		if u, ok := testUsers[id]; ok {
			return u, nil
		}
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}))

	probe := func(c *gin.Context) {
		invoked = true
		c.JSON(http.StatusOK, gin.H{"done": true})
	}

	r.POST("/gated/create", rig.api.Permit(CapCreateUser), probe)
	r.DELETE("/gated/delete", rig.api.Permit(CapDeleteUser), probe)
	r.GET("/gated/users/:id", rig.api.Permit(CapReadUser("id")), probe)
	r.POST("/gated/register", rig.api.Permit(CapCreateUser, WhenBodyHas("role")), func(c *gin.Context) {
		// the peeked body must still bind
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"bind": err.Error()})
			return
		}
		invoked = true
		c.JSON(http.StatusOK, body)
	})

	rig.engine = r
	return rig
}

func (rig *gateRig) do(t *testing.T, method, path string, asUser int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if asUser != 0 {
		token, err := rig.codec.Encode(asUser)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	*rig.invoked = false
	rig.engine.ServeHTTP(rec, req)
	return rec
}

func envelopeCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unparsable envelope %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

func TestPermitRejectsAnonymous(t *testing.T) {
	rig := newGateRig(t)
	rec := rig.do(t, http.MethodPost, "/gated/create", 0, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *rig.invoked {
		t.Fatal("handler ran despite anonymous caller")
	}
	if got := envelopeCode(t, rec); got != int(domain.CodeUnauthorized) {
		t.Fatalf("envelope code = %d, want %d", got, domain.CodeUnauthorized)
	}
}

func TestPermitDeniesWithSpecificCode(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		user   int64
		want   domain.Code
	}{
		{"customer create", http.MethodPost, "/gated/create", 7, domain.CodeNoCreateUser},
		{"customer read other", http.MethodGet, "/gated/users/8", 7, domain.CodeNoReadUser},
		{"employee delete", http.MethodDelete, "/gated/delete", 2, domain.CodeNoDeleteUser},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rig := newGateRig(t)
			rec := rig.do(t, tc.method, tc.path, tc.user, "")
			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
			if *rig.invoked {
				t.Fatal("handler ran despite denial")
			}
			if got := envelopeCode(t, rec); got != int(tc.want) {
				t.Fatalf("envelope code = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPermitAllows(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		user   int64
	}{
		{"admin create", http.MethodPost, "/gated/create", 1},
		{"admin delete", http.MethodDelete, "/gated/delete", 1},
		{"employee create", http.MethodPost, "/gated/create", 2},
		{"customer read self", http.MethodGet, "/gated/users/7", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rig := newGateRig(t)
			rec := rig.do(t, tc.method, tc.path, tc.user, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}
			if !*rig.invoked {
				t.Fatal("handler did not run on allowed capability")
			}
		})
	}
}

func TestPermitWhenBodyHasSkipsCheck(t *testing.T) {
	rig := newGateRig(t)

	// no role field: gate is skipped, anonymous passes through
	rec := rig.do(t, http.MethodPost, "/gated/register", 0, `{"phone":"13800000000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if !*rig.invoked {
		t.Fatal("handler did not run when gated field absent")
	}

	// role present: anonymous is rejected before the handler
	rec = rig.do(t, http.MethodPost, "/gated/register", 0, `{"phone":"13800000000","role":"admin"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *rig.invoked {
		t.Fatal("handler ran despite gated field denial")
	}

	// role present with permission: allowed, and the body survived the peek
	rec = rig.do(t, http.MethodPost, "/gated/register", 1, `{"phone":"13800000000","role":"employee"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var echoed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &echoed); err != nil {
		t.Fatalf("unparsable echo: %v", err)
	}
	if echoed["role"] != "employee" {
		t.Fatalf("body lost after gate peek: %v", echoed)
	}
}
