package amocrm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a client for the amoCRM v4 REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new amoCRM API client. baseURL is the scheme and host
// of the account, e.g. "https://example.amocrm.ru".
func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FieldValue is a single value of a custom field.
type FieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

// CustomField addresses a field either by code (system fields such as PHONE)
// or by display name.
type CustomField struct {
	FieldCode string       `json:"field_code,omitempty"`
	FieldName string       `json:"field_name,omitempty"`
	Values    []FieldValue `json:"values"`
}

// Contact is the contact-creation payload.
type Contact struct {
	Name               string        `json:"name"`
	CustomFieldsValues []CustomField `json:"custom_fields_values,omitempty"`
}

// ContactRef links an entity to an existing contact.
type ContactRef struct {
	ID int64 `json:"id"`
}

// LeadEmbedded carries the relations of a lead.
type LeadEmbedded struct {
	Contacts []ContactRef `json:"contacts"`
}

// Lead is the lead-creation payload.
type Lead struct {
	Name               string        `json:"name"`
	Price              int64         `json:"price"`
	CustomFieldsValues []CustomField `json:"custom_fields_values,omitempty"`
	Embedded           *LeadEmbedded `json:"_embedded,omitempty"`
}

// APIError is returned when amoCRM answers with a non-2xx status. The status
// code and body are preserved verbatim so handlers can mirror them.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amoCRM API error (status %d): %s", e.StatusCode, e.Body)
}

// createdEntity is the part of the response we care about.
type createdEntity struct {
	ID int64 `json:"id"`
}

type embeddedResponse struct {
	Embedded struct {
		Contacts []createdEntity `json:"contacts"`
		Leads    []createdEntity `json:"leads"`
	} `json:"_embedded"`
}

// CreateContact creates a contact and returns its id.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (int64, error) {
	result, err := c.post(ctx, "/api/v4/contacts", []Contact{contact})
	if err != nil {
		return 0, err
	}

	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("no contacts in amoCRM response")
	}

	return result.Embedded.Contacts[0].ID, nil
}

// CreateLead creates a lead and returns its id.
func (c *Client) CreateLead(ctx context.Context, lead Lead) (int64, error) {
	result, err := c.post(ctx, "/api/v4/leads", []Lead{lead})
	if err != nil {
		return 0, err
	}

	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("no leads in amoCRM response")
	}

	return result.Embedded.Leads[0].ID, nil
}

// post sends a JSON payload (amoCRM expects an array of entities) and decodes
// the embedded response.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*embeddedResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result embeddedResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}
