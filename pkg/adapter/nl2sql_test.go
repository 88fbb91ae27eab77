package adapter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mkino/larder/pkg/adapter"
)

func TestTranslateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Question string `json:"question"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gt.S(t, body.Question).Contains("how many ingredients")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"question":  body.Question,
			"sql":       "SELECT COUNT(*) AS n FROM restaurant_ingredients WHERE restaurant_id = 1;",
			"results":   []map[string]any{{"n": 42}},
			"row_count": 1,
		})
	}))
	defer srv.Close()

	client := adapter.NewTranslator(srv.URL)
	result := gt.R1(client.Translate(context.Background(), "how many ingredients do we have?")).NoError(t)

	gt.False(t, result.IsError())
	gt.N(t, result.RowCount).Equal(1)
	gt.A(t, result.Results).Length(1)
}

func TestTranslateSQLError(t *testing.T) {
	// SQL-level failures arrive with a structured error field on a 422;
	// they are results, not transport errors.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"question": "bad question",
			"sql":      "SELECT broken FROM nowhere",
			"error":    "relation \"nowhere\" does not exist",
		})
	}))
	defer srv.Close()

	client := adapter.NewTranslator(srv.URL)
	result := gt.R1(client.Translate(context.Background(), "bad question")).NoError(t)

	gt.True(t, result.IsError())
	gt.S(t, result.Error).Contains("does not exist")
	gt.V(t, result.SQL).Equal("SELECT broken FROM nowhere")
}

func TestTranslateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	client := adapter.NewTranslator(srv.URL)
	_, err := client.Translate(context.Background(), "anything")
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("nl2sql endpoint returned error")
}
