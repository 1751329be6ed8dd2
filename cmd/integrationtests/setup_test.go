package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"auction-engine/internal/auctionService"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"

	"github.com/gin-gonic/gin"
)

// TestEnv bundles the router with the backing stores so tests can seed
// articles and ledger accounts directly.
type TestEnv struct {
	Router   *gin.Engine
	Ledger   *ledger.Ledger
	Articles *repository.MemoryArticleRepo
	Sink     *events.MemorySink
}

// SetupTestEnv initializes the router with in-memory components for
// integration testing.
func SetupTestEnv() *TestEnv {
	gin.SetMode(gin.TestMode)
	auctions := repository.NewMemoryAuctionRepo()
	articles := repository.NewMemoryArticleRepo()
	funds := ledger.NewLedger()
	sink := events.NewMemorySink()
	service := auctionService.NewAuctionService(auctions, articles, funds, sink, nil, nil)
	router := server.SetupRouter(service, nil)
	return &TestEnv{Router: router, Ledger: funds, Articles: articles, Sink: sink}
}

// SetupTestEnvWithArticles initializes the environment and seeds articles.
func SetupTestEnvWithArticles(articles ...model.Article) *TestEnv {
	env := SetupTestEnv()
	for i := range articles {
		a := articles[i]
		if err := env.Articles.Save(&a); err != nil {
			panic(err)
		}
	}
	return env
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code == 201 {
			resp = resp["data"].(map[string]any)
		}
	}

	return resp, w
}
