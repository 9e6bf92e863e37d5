package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
)

func TestNew_TimeoutBoundsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"data":[{"embedding":[0.1]}]}`))
	}))
	defer srv.Close()

	oracle := New(&Config{
		APIKey:         "test-key",
		BaseURL:        srv.URL + "/v1",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        50 * time.Millisecond,
		Logger:         zap.NewNop(),
	})

	_, err := oracle.Embed(context.Background(), "metformin 500mg")
	if err == nil {
		t.Fatal("expected the slow upstream to time out")
	}
	if !errors.Is(err, domain.ErrOracleUnavailable) {
		t.Errorf("timeout must surface as ErrOracleUnavailable, got %v", err)
	}
}
