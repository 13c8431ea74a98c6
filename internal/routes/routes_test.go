package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/config"
	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/profile"
	"github.com/amgrenovation/ops-dashboard/internal/routes"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	"github.com/amgrenovation/ops-dashboard/internal/testutil"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
)

type harness struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	sender *testutil.FakeSender
	store  *storage.MemoryStore
	tokens *auth.TokenManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validators.RegisterGin())

	db := testutil.NewDB(t)
	svc := settings.NewService(db, "")
	_, err := svc.Save(context.Background(), &models.CompanySettings{
		CompanyName: "AMG Rénovation",
		N8NConfig:   datatypes.JSONMap{"webhook_base": "http://n8n.test/webhook"},
	})
	require.NoError(t, err)

	h := &harness{
		t:      t,
		db:     db,
		sender: &testutil.FakeSender{},
		store:  storage.NewMemoryStore("http://files.test"),
		tokens: auth.NewTokenManager("test-secret", "test", time.Hour),
	}

	h.router = gin.New()
	routes.RegisterRoutes(h.router, routes.Deps{
		DB:       db,
		Config:   &config.Config{Env: "test"},
		Logger:   zap.NewNop(),
		Tokens:   h.tokens,
		Profiles: profile.NewCachedResolver(profile.NewDBResolver(db), profile.NewMemoryCache(time.Minute), nil),
		Sender:   h.sender,
		Store:    h.store,
		Settings: svc,
	})
	return h
}

// user creates an account and returns a session token for it. A nil
// features slice keeps the default profile.
func (h *harness) user(email, role string, features []string) string {
	h.t.Helper()

	hash, err := auth.HashPassword("password1")
	require.NoError(h.t, err)
	u := models.User{Email: email, PasswordHash: hash}
	require.NoError(h.t, h.db.Create(&u).Error)

	updates := map[string]any{"role": role}
	if features != nil {
		updates["enabled_features"] = datatypes.NewJSONSlice(features)
	}
	require.NoError(h.t, h.db.Model(&models.Profile{ID: u.ID}).Updates(updates).Error)

	return h.login(email, "password1")
}

func (h *harness) login(email, password string) string {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// listOf decodes a {data, total} list response.
func listOf(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, len(body["data"].([]any)), body["total"])
	return body["data"].([]any)
}

func allSections() []string {
	return access.IDs(access.MasterMenu())
}

// ======================================================
// PUBLIC
// ======================================================

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	h.user("admin@amg.fr", models.RoleAdmin, allSections())

	w := h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ADMIN@amg.fr", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@amg.fr", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@amg.fr", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// FEATURE GATE
// ======================================================

func TestMenuAndSectionGate(t *testing.T) {
	h := newHarness(t)
	admin := h.user("admin@amg.fr", models.RoleAdmin, []string{"dashboard"})
	staff := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodGet, "/api/me/menu", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"dashboard", "users", "parametres"}, decode(t, w)["ids"])

	w = h.do(http.MethodGet, "/api/me/menu", staff, nil)
	assert.Equal(t, []any{"dashboard", "clients", "rdv", "devis", "factures", "parametres"}, decode(t, w)["ids"])

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/quotes", staff, nil).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/settings", staff, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/whatsapp/messages", staff, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/admin/users", staff, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/quotes", admin, nil).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/admin/users", admin, nil).Code)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/clients", "", nil).Code)
}

// ======================================================
// BILLING
// ======================================================

func TestCreateQuote_WorkflowFailureKeepsQuote(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)
	h.sender.Fail = true

	w := h.do(http.MethodPost, "/api/quotes", token, gin.H{
		"client_name":  "Jean Dupont",
		"client_email": "jean@example.com",
		"items": []gin.H{
			{"description": "Peinture", "quantity": 2, "unit_price": 10},
			{"description": "Enduit", "quantity": 1, "unit_price": 5},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Contains(t, body["warning"], "Enregistré localement")
	quote := body["quote"].(map[string]any)
	assert.Equal(t, "draft", quote["status"])
	assert.InDelta(t, 30.0, quote["total_ttc"], 0.001)
	assert.True(t, strings.HasPrefix(quote["quote_number"].(string), "DEV-"))

	var quotes, clients int64
	h.db.Model(&models.Quote{}).Count(&quotes)
	h.db.Model(&models.Client{}).Count(&clients)
	assert.Equal(t, int64(1), quotes)
	assert.Equal(t, int64(1), clients)

	calls := h.sender.Calls()
	require.Len(t, calls, 1)
	url, _ := calls[0].Config.URL(calls[0].Hook)
	assert.Equal(t, "http://n8n.test/webhook/generer-devis", url)
}

func TestCreateQuote_Validation(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodPost, "/api/quotes", token, gin.H{"client_name": "Jean", "items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/quotes", token, gin.H{
		"items": []gin.H{{"description": "Peinture", "quantity": 1, "unit_price": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client_required", decode(t, w)["error_code"])
}

func TestQuoteToInvoiceFlow(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodPost, "/api/quotes", token, gin.H{
		"client_name": "Marie Curie",
		"items":       []gin.H{{"description": "Carrelage", "quantity": 3, "unit_price": 100}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	quoteID := decode(t, w)["quote"].(map[string]any)["id"].(string)

	w = h.do(http.MethodPost, "/api/quotes/"+quoteID+"/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sent", decode(t, w)["quote"].(map[string]any)["status"])

	w = h.do(http.MethodPatch, "/api/quotes/"+quoteID+"/status", token, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/invoices", token, gin.H{"quote_id": quoteID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invoice := decode(t, w)["invoice"].(map[string]any)
	assert.Equal(t, "unpaid", invoice["status"])
	assert.Equal(t, quoteID, invoice["quote_id"])
	invoiceID := invoice["id"].(string)

	w = h.do(http.MethodPost, "/api/invoices/"+invoiceID+"/paid", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", decode(t, w)["status"])

	w = h.do(http.MethodGet, "/api/clients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	row := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Facture payée", row["status"])
	assert.EqualValues(t, 1, row["quote_count"])
	assert.EqualValues(t, 1, row["invoice_count"])
	assert.Len(t, body["stats"], 6)

	w = h.do(http.MethodGet, "/api/clients?query=nobody", token, nil)
	assert.EqualValues(t, 0, decode(t, w)["total"])

	w = h.do(http.MethodDelete, "/api/invoices/"+invoiceID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = h.do(http.MethodDelete, "/api/invoices/"+invoiceID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodDelete, "/api/invoices/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// CLIENTS / APPOINTMENTS
// ======================================================

func TestClientCRUD(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodPost, "/api/clients", token, gin.H{"firstname": "Ada", "lastname": "Lovelace"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = h.do(http.MethodPatch, "/api/clients/"+id, token, gin.H{"phone": "0601020304"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "0601020304", body["phone"])
	assert.Equal(t, "Ada", body["firstname"])

	w = h.do(http.MethodPost, "/api/clients", token, gin.H{"email": "x@y.fr"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/clients/"+id, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/api/clients/"+id, token, nil).Code)
}

func TestAppointments(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodPost, "/api/appointments", token, gin.H{
		"client_name": "Ada Lovelace",
		"date":        "2026-03-10",
		"time":        "14:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/appointments?date=2026-03-10", token, nil)), 1)
	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/appointments?date=2026-03-11", token, nil)), 0)
	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/appointments?year=2026&month=3", token, nil)), 1)

	w = h.do(http.MethodGet, "/api/appointments?year=2026&month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPut, "/api/appointments/"+id, token, gin.H{"notes": "Portail vert"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Portail vert", decode(t, w)["notes"])

	w = h.do(http.MethodPost, "/api/appointments", token, gin.H{"client_name": "X", "date": "10/03/2026", "time": "9h"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/appointments/"+id, token, nil).Code)
}

// ======================================================
// WHATSAPP / FILES / SETTINGS
// ======================================================

func TestWhatsapp(t *testing.T) {
	h := newHarness(t)
	token := h.user("admin@amg.fr", models.RoleAdmin, allSections())

	w := h.do(http.MethodPost, "/api/whatsapp/messages", token, gin.H{"message": "Bonjour"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "+33 6 00 00 00 00", body["phone_number"])
	assert.Equal(t, "assistant", body["sender"])

	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/whatsapp/messages?since=2000-01-01T00:00:00Z", token, nil)), 1)
	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/whatsapp/messages?since=2999-01-01T00:00:00Z", token, nil)), 0)

	w = h.do(http.MethodGet, "/api/whatsapp/messages?since=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileUploadNormalizesImages(t *testing.T) {
	h := newHarness(t)
	token := h.user("admin@amg.fr", models.RoleAdmin, allSections())

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("category", "photo"))
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="chantier.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	file := decode(t, w)
	assert.Equal(t, "chantier.webp", file["file_name"])
	assert.Equal(t, "image/webp", file["file_type"])
	assert.Equal(t, 1, h.store.Len())

	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/files?query=CHANTIER&category=photo", token, nil)), 1)
	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/files?category=devis", token, nil)), 0)

	w = h.do(http.MethodDelete, "/api/files/"+file["id"].(string), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, h.store.Len())
}

func TestSettings(t *testing.T) {
	h := newHarness(t)
	token := h.user("staff@amg.fr", models.RoleUser, nil)

	w := h.do(http.MethodPut, "/api/settings", token, gin.H{
		"company_name": "AMG",
		"n8n_config":   gin.H{"webhook_base": "not a url"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_webhook_base", decode(t, w)["error_code"])

	w = h.do(http.MethodPut, "/api/settings", token, gin.H{
		"company_name": "AMG",
		"n8n_config":   gin.H{"webhook_base": "https://flows.example.com", "devis_webhook": "/mon-devis"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/settings", token, nil)
	body := decode(t, w)
	assert.Equal(t, "AMG", body["company_name"])
	assert.Equal(t, "/mon-devis", body["n8n_config"].(map[string]any)["devis_webhook"])
}

// ======================================================
// ADMIN
// ======================================================

func TestCreateUserFunction(t *testing.T) {
	h := newHarness(t)
	admin := h.user("admin@amg.fr", models.RoleAdmin, allSections())
	staff := h.user("staff@amg.fr", models.RoleUser, nil)

	errorOf := func(w *httptest.ResponseRecorder) string {
		assert.Equal(t, http.StatusBadRequest, w.Code)
		msg, _ := decode(t, w)["error"].(string)
		return msg
	}

	payload := gin.H{"email": "new@amg.fr", "password": "secret1", "enabled_features": []string{"dashboard", "devis"}}

	assert.Equal(t, "Missing authorization header",
		errorOf(h.do(http.MethodPost, "/api/functions/create-user", "", payload)))
	assert.Equal(t, "Invalid authentication token",
		errorOf(h.do(http.MethodPost, "/api/functions/create-user", "garbage", payload)))
	assert.Equal(t, "Only admins can create users",
		errorOf(h.do(http.MethodPost, "/api/functions/create-user", staff, payload)))
	assert.Equal(t, "Password should be at least 6 characters",
		errorOf(h.do(http.MethodPost, "/api/functions/create-user", admin, gin.H{"email": "a@amg.fr", "password": "123"})))

	w := h.do(http.MethodPost, "/api/functions/create-user", admin, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "User created successfully", decode(t, w)["message"])

	assert.Equal(t, "A user with this email address has already been registered",
		errorOf(h.do(http.MethodPost, "/api/functions/create-user", admin, payload)))

	created := h.login("new@amg.fr", "secret1")
	w = h.do(http.MethodGet, "/api/me/menu", created, nil)
	assert.Equal(t, []any{"dashboard", "devis", "parametres"}, decode(t, w)["ids"])
}

func TestAdminUpdateUser(t *testing.T) {
	h := newHarness(t)
	admin := h.user("admin@amg.fr", models.RoleAdmin, allSections())
	h.user("staff@amg.fr", models.RoleUser, nil)

	var staff models.Profile
	require.NoError(t, h.db.First(&staff, "email = ?", "staff@amg.fr").Error)

	w := h.do(http.MethodPatch, "/api/admin/users/"+staff.ID.String(), admin, gin.H{
		"enabled_features": []string{"whatsapp"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []any{"whatsapp"}, decode(t, w)["enabled_features"])

	w = h.do(http.MethodPatch, "/api/admin/users/"+staff.ID.String(), admin, gin.H{
		"enabled_features": []string{"teleportation"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Len(t, listOf(t, h.do(http.MethodGet, "/api/admin/users", admin, nil)), 2)
}
