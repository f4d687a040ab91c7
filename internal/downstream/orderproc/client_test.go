package orderproc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emart-gateway/internal/order"
	dErrors "emart-gateway/pkg/domain-errors"
)

func f64(v float64) *float64 { return &v }

func TestValidateUserSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validateuser", r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "u1", creds.UserID)
		assert.Equal(t, "pass123", creds.Password)

		json.NewEncoder(w).Encode(map[string]string{"status": "success", "user": "u1", "email": "alice@example.com"})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).ValidateUser(context.Background(), Credentials{UserID: "u1", Password: "pass123"})

	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "alice@example.com", result.Email)
	assert.NotEmpty(t, result.Raw)
}

func TestValidateUserRejectionIsAVerdictNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"status": "failed"})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).ValidateUser(context.Background(), Credentials{UserID: "u1", Password: "wrong"})

	require.NoError(t, err)
	assert.False(t, result.Success())
}

func TestValidateUserTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).ValidateUser(context.Background(), Credentials{UserID: "u1", Password: "pass123"})

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestProducts(t *testing.T) {
	t.Run("passes catalog through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			w.Write([]byte(`[{"id":1,"name":"Laptop","price":1200}]`))
		}))
		defer srv.Close()

		body, err := NewClient(srv.URL).Products(context.Background())

		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1,"name":"Laptop","price":1200}]`, string(body))
	})

	t.Run("maps downstream 500 to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Products(context.Background())

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestSubmitOrder(t *testing.T) {
	submission := order.Submission{
		UserID: "u1",
		Items:  []order.LineItem{{ProductID: 1, Name: "Laptop", Quantity: 1, Price: f64(1200)}},
		Total:  f64(1240),
	}

	t.Run("returns order result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/submitorder", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{"status": "success", "order_id": "O1"})
		}))
		defer srv.Close()

		result, err := NewClient(srv.URL).SubmitOrder(context.Background(), submission)

		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"success","order_id":"O1"}`, string(result))
	})

	t.Run("application failure body passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"status": "failed", "message": "0/1 items recorded"})
		}))
		defer srv.Close()

		result, err := NewClient(srv.URL).SubmitOrder(context.Background(), submission)

		require.NoError(t, err, "an application-level failure is still a result")
		assert.JSONEq(t, `{"status":"failed","message":"0/1 items recorded"}`, string(result))
	})

	t.Run("non-JSON body is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, WithLogger(testLogger()))
		_, err := client.SubmitOrder(context.Background(), submission)

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
