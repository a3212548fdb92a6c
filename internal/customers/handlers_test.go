package customers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomersTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Get("/api/v1/customers", h.List)
	app.Get("/api/v1/customers/:id", h.Get)
	app.Post("/api/v1/customers", h.Create)
	app.Put("/api/v1/customers/:id", h.Update)
	app.Delete("/api/v1/customers/:id", h.Delete)
	return app, db
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestCreateCustomer(t *testing.T) {
	app, _ := setupCustomersTest(t)

	payload, _ := json.Marshal(map[string]string{
		"company_id":           "12345678",
		"company_name":         "測試股份有限公司",
		"contact_person":       "林會計",
		"registration_address": "台北市信義區一段1號",
	})
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "12345678", data["company_id"])
}

func TestCreateCustomer_InvalidBusinessNumber(t *testing.T) {
	app, _ := setupCustomersTest(t)

	payload, _ := json.Marshal(map[string]string{
		"company_id":           "1234",
		"company_name":         "測試",
		"registration_address": "台北市",
	})
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateCustomer_DuplicateBusinessNumber(t *testing.T) {
	app, db := setupCustomersTest(t)
	require.NoError(t, db.Create(&models.Company{
		CompanyID:           "12345678",
		CompanyName:         "既有公司",
		RegistrationAddress: "台中市",
	}).Error)

	payload, _ := json.Marshal(map[string]string{
		"company_id":           "12345678",
		"company_name":         "重複公司",
		"registration_address": "台北市",
	})
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestListCustomers_SearchAndPagination(t *testing.T) {
	app, db := setupCustomersTest(t)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&models.Company{
			CompanyID:           fmt.Sprintf("%08d", 10000000+i),
			CompanyName:         fmt.Sprintf("公司%02d", i),
			RegistrationAddress: "台北市",
		}).Error)
	}

	req := httptest.NewRequest("GET", "/api/v1/customers?page=2&page_size=20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	meta := body["metadata"].(map[string]interface{})
	assert.Equal(t, float64(25), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Len(t, body["data"].([]interface{}), 5)

	req = httptest.NewRequest("GET", "/api/v1/customers?search=10000003", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestGetCustomer_NotFound(t *testing.T) {
	app, _ := setupCustomersTest(t)

	req := httptest.NewRequest("GET", "/api/v1/customers/a2a2a2a2-0000-0000-0000-000000000000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/customers/not-a-uuid", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// The unified business number is immutable once registered.
func TestUpdateCustomer_CompanyIDImmutable(t *testing.T) {
	app, db := setupCustomersTest(t)
	company := models.Company{
		CompanyID:           "12345678",
		CompanyName:         "原公司",
		RegistrationAddress: "台北市",
	}
	require.NoError(t, db.Create(&company).Error)

	payload, _ := json.Marshal(map[string]string{
		"company_id":           "99999999",
		"company_name":         "改名公司",
		"registration_address": "新北市",
	})
	req := httptest.NewRequest("PUT", "/api/v1/customers/"+company.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "改名公司", data["company_name"])
	assert.Equal(t, "12345678", data["company_id"])
}

func TestDeleteCustomer(t *testing.T) {
	app, db := setupCustomersTest(t)
	company := models.Company{
		CompanyID:           "12345678",
		CompanyName:         "公司",
		RegistrationAddress: "台北市",
	}
	require.NoError(t, db.Create(&company).Error)

	req := httptest.NewRequest("DELETE", "/api/v1/customers/"+company.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// record survives as a soft-deleted row
	var raw models.Company
	require.NoError(t, db.Unscoped().Where("id = ?", company.ID).First(&raw).Error)
	assert.True(t, raw.IsDeleted)

	req = httptest.NewRequest("GET", "/api/v1/customers/"+company.ID.String(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
