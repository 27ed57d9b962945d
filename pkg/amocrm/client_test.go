package amocrm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact_Success(t *testing.T) {
	var gotAuth string
	var gotPayload []Contact

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v4/contacts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":41235}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second)

	contact := Contact{
		Name: "Ivan Petrov",
		CustomFieldsValues: []CustomField{
			{FieldCode: "PHONE", Values: []FieldValue{{Value: "+79001234567", EnumCode: "WORK"}}},
		},
	}

	id, err := client.CreateContact(context.Background(), contact)
	require.NoError(t, err)

	assert.Equal(t, int64(41235), id)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	require.Len(t, gotPayload, 1, "amoCRM expects an array of contacts")
	assert.Equal(t, "Ivan Petrov", gotPayload[0].Name)
}

func TestCreateLead_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/leads", r.URL.Path)

		var payload []Lead
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 1)
		require.NotNil(t, payload[0].Embedded)
		assert.Equal(t, int64(41235), payload[0].Embedded.Contacts[0].ID)

		_, _ = w.Write([]byte(`{"_embedded":{"leads":[{"id":98765}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second)

	lead := Lead{
		Name:     "Заявка на кредит 100000 руб. - Ivan Petrov",
		Price:    100000,
		Embedded: &LeadEmbedded{Contacts: []ContactRef{{ID: 41235}}},
	}

	id, err := client.CreateLead(context.Background(), lead)
	require.NoError(t, err)
	assert.Equal(t, int64(98765), id)
}

func TestCreateContact_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"title":"Payment Required"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second)

	_, err := client.CreateContact(context.Background(), Contact{Name: "Ivan Petrov"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, `{"title":"Payment Required"}`, apiErr.Body)
}

func TestCreateContact_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "secret-token", time.Second)

	_, err := client.CreateContact(context.Background(), Contact{Name: "Ivan Petrov"})
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like API errors")
}
