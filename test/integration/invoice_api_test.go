package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInvoice represents an invoice in the API
type TestInvoice struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Attachment   string  `json:"attachment,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// TestPagination represents pagination data in API responses
type TestPagination struct {
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// TestInvoiceListResponse represents the response from GET /invoices
type TestInvoiceListResponse struct {
	Count      int            `json:"count"`
	Invoices   []TestInvoice  `json:"invoices"`
	Pagination TestPagination `json:"pagination"`
}

// TestAuthResponse represents the response from auth endpoints
type TestAuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TestInvoiceAPI runs the invoice endpoints end to end against a running
// server. Set API_BASE_URL to point at the server; the test skips when no
// server is reachable.
func TestInvoiceAPI(t *testing.T) {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Check the server is up before running anything.
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		t.Skipf("server not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()

	// Register a throwaway user for this run.
	var accessToken string
	email := fmt.Sprintf("integration-%d@example.com", time.Now().UnixNano())

	t.Run("Register", func(t *testing.T) {
		payload := map[string]string{
			"email":    email,
			"password": "integration-test-password",
			"name":     "Integration Test",
		}
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		resp, err := client.Post(baseURL+"/v1/auth/register", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var auth TestAuthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
		require.NotEmpty(t, auth.AccessToken)
		accessToken = auth.AccessToken
	})

	require.NotEmpty(t, accessToken, "registration must succeed before the invoice tests")

	authed := func(req *http.Request) *http.Request {
		req.Header.Set("Authorization", "Bearer "+accessToken)
		return req
	}

	var testInvoiceID string

	t.Run("CreateInvoice", func(t *testing.T) {
		form := url.Values{}
		form.Set("title", "Integration salary")
		form.Set("description", "Created by the integration test")
		form.Set("amount", "1234.56")

		req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/invoices", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var invoice TestInvoice
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&invoice))
		assert.NotEmpty(t, invoice.ID)
		assert.Equal(t, "Integration salary", invoice.Title)
		assert.Equal(t, 1234.56, invoice.Amount)
		assert.Equal(t, "USD", invoice.CurrencyCode)
		testInvoiceID = invoice.ID
	})

	require.NotEmpty(t, testInvoiceID, "creation must succeed before the remaining tests")

	t.Run("CreateInvoiceValidation", func(t *testing.T) {
		form := url.Values{}
		form.Set("amount", "not-a-number")

		req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/invoices", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("GetInvoice", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/invoices/"+testInvoiceID, nil)
		require.NoError(t, err)

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var invoice TestInvoice
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&invoice))
		assert.Equal(t, testInvoiceID, invoice.ID)
	})

	t.Run("GetInvoiceRequiresAuth", func(t *testing.T) {
		resp, err := client.Get(baseURL + "/v1/invoices/" + testInvoiceID)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ListInvoices", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/invoices?q=Integration", nil)
		require.NoError(t, err)

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list TestInvoiceListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.GreaterOrEqual(t, list.Count, 1)
		assert.Equal(t, 1, list.Pagination.PageNumber)
		assert.Equal(t, 10, list.Pagination.PageSize)
		assert.False(t, list.Pagination.HasPrevious)

		found := false
		for _, invoice := range list.Invoices {
			if invoice.ID == testInvoiceID {
				found = true
			}
		}
		assert.True(t, found, "created invoice should appear in the listing")
	})

	t.Run("UpdateInvoice", func(t *testing.T) {
		form := url.Values{}
		form.Set("title", "Integration salary (updated)")
		form.Set("description", "Updated by the integration test")
		form.Set("amount", "2000")

		req, err := http.NewRequest(http.MethodPut, baseURL+"/v1/invoices/"+testInvoiceID, strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var invoice TestInvoice
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&invoice))
		assert.Equal(t, "Integration salary (updated)", invoice.Title)
		assert.Equal(t, 2000.0, invoice.Amount)
	})

	t.Run("AttachmentLifecycle", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("attachment", "receipt.pdf")
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader("integration test attachment"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/invoices/"+testInvoiceID+"/attachment", &body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var invoice TestInvoice
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&invoice))
		require.NotEmpty(t, invoice.Attachment)

		// Remove it again.
		req, err = http.NewRequest(http.MethodDelete, baseURL+"/v1/invoices/"+testInvoiceID+"/attachment", nil)
		require.NoError(t, err)

		resp2, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp2.Body.Close()
		require.Equal(t, http.StatusOK, resp2.StatusCode)

		var cleared TestInvoice
		require.NoError(t, json.NewDecoder(resp2.Body).Decode(&cleared))
		assert.Empty(t, cleared.Attachment)
	})

	t.Run("DeleteInvoice", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, baseURL+"/v1/invoices/"+testInvoiceID, nil)
		require.NoError(t, err)

		resp, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		// The invoice is gone afterwards.
		req, err = http.NewRequest(http.MethodGet, baseURL+"/v1/invoices/"+testInvoiceID, nil)
		require.NoError(t, err)

		resp2, err := client.Do(authed(req))
		require.NoError(t, err)
		defer resp2.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	})
}
