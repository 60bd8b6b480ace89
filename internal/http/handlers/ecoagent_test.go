package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/miyannishar/eco-logic-backend/internal/services"
)

func newEcoAgentRouter(t *testing.T, products *fakeProductService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewEcoAgentHandler(newTestLogger(t), products)
	r := gin.New()
	r.GET("/eco-agent/test", h.Test)
	r.POST("/eco-agent/product-details", h.ProductDetails)
	return r
}

func TestEcoAgentTest(t *testing.T) {
	t.Parallel()
	r := newEcoAgentRouter(t, &fakeProductService{})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/eco-agent/test", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["Prenatal - API Router Test"] != "Works like a Charm!!!" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestProductDetailsSuccess(t *testing.T) {
	t.Parallel()
	products := &fakeProductService{result: map[string]any{
		"product_name":                  "Fizzy Soda",
		services.EnvironmentalResultKey: map[string]any{"harmful_aspects": []any{"x"}},
		services.HealthResultKey:        map[string]any{"harmful_aspects": []any{"y"}},
	}}
	r := newEcoAgentRouter(t, products)

	body, contentType := multipartBody(t, "file", "soda_can.png", []byte("fake-png"), map[string]string{
		"userMedicalAilments": "diabetes",
		"userId":              "user-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/eco-agent/product-details", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(r, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["product_name"] != "Fizzy Soda" {
		t.Fatalf("unexpected body: %v", got)
	}
	if _, ok := got[services.EnvironmentalResultKey]; !ok {
		t.Fatalf("missing %q key", services.EnvironmentalResultKey)
	}
	if _, ok := got[services.HealthResultKey]; !ok {
		t.Fatalf("missing %q key", services.HealthResultKey)
	}

	if products.input.UserID != "user-1" || products.input.MedicalAilments != "diabetes" {
		t.Fatalf("form fields not forwarded: %+v", products.input)
	}
	if string(products.input.File.Bytes) != "fake-png" {
		t.Fatal("file bytes not forwarded")
	}
}

func TestProductDetailsMissingFile(t *testing.T) {
	t.Parallel()
	r := newEcoAgentRouter(t, &fakeProductService{})

	body, contentType := multipartBody(t, "file", "", nil, map[string]string{"userId": "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/eco-agent/product-details", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(r, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["status"] != "failed" || got["step"] != services.StepFileHandling {
		t.Fatalf("unexpected error body: %v", got)
	}
}

func TestProductDetailsPipelineFailure(t *testing.T) {
	t.Parallel()
	products := &fakeProductService{err: &services.PipelineError{
		Step:   services.StepProcessing,
		Stage:  services.StageAnalyzingEnvironment,
		Reason: "environmental analysis failed",
	}}
	r := newEcoAgentRouter(t, products)

	body, contentType := multipartBody(t, "file", "soda_can.png", []byte("fake-png"), nil)
	req := httptest.NewRequest(http.MethodPost, "/eco-agent/product-details", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(r, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["error"] != "environmental analysis failed" || got["status"] != "failed" || got["step"] != services.StepProcessing {
		t.Fatalf("unexpected error body: %v", got)
	}
}
