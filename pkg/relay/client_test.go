package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandero/pos-api/pkg/receipt"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthInfo{
			Status:         "ok",
			Version:        "1.4.0",
			DefaultPrinter: "caja",
			Printers:       []string{"caja", "cocina"},
			Timestamp:      "2026-03-14T18:30:00Z",
		})
	}))
	defer srv.Close()

	info, err := NewClient(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, "caja", info.DefaultPrinter)
	assert.Len(t, info.Printers, 2)
}

func TestHealthNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Health(context.Background())
	assert.Error(t, err)
}

func TestPrinters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/printers", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":       true,
			"printers": []string{"caja"},
			"count":    1,
		})
	}))
	defer srv.Close()

	printers, err := NewClient(srv.URL).Printers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"caja"}, printers)
}

func TestPrintJob(t *testing.T) {
	var received Job
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print/job", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Result{OK: true, Driver: "caja"})
	}))
	defer srv.Close()

	feed := 2
	job := Job{
		Type:    "comanda",
		Payload: receipt.JobPayload{Order: receipt.OrderSnapshot{ID: 7}},
		Driver:  "caja",
		Feed:    &feed,
	}
	result, err := NewClient(srv.URL).PrintJob(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "caja", result.Driver)

	assert.Equal(t, job.Type, received.Type)
	assert.Equal(t, uint(7), received.Payload.Order.ID)
	require.NotNil(t, received.Feed)
	assert.Equal(t, 2, *received.Feed)
}

func TestPrintJobRelayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Result{OK: false, Error: "impresora desconectada"})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).PrintJob(context.Background(), Job{Type: "raw"})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.OK)
	assert.Contains(t, err.Error(), "impresora desconectada")
}

func TestPrintJobUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.PrintJob(context.Background(), Job{Type: "raw"})
	assert.Error(t, err)
}

func TestPrintRawLegacyBody(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print/raw", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(Result{OK: true, Driver: "caja"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PrintRaw(context.Background(), "caja", "hola", 1, false)
	require.NoError(t, err)
	assert.Equal(t, "hola", body["content"])
	assert.Equal(t, float64(1), body["feed"])
	assert.Equal(t, false, body["cut"])
}

func TestPrintPedidoLegacyBody(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print/pedido", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(Result{OK: true})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PrintPedido(context.Background(), "caja", 42, "pedido")
	require.NoError(t, err)
	assert.Equal(t, float64(42), body["pedido_id"])
	assert.Equal(t, "pedido", body["contenido"])
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://printhost.local:8765/")
	assert.Equal(t, "http://printhost.local:8765", c.baseURL)
}
