package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchCatalogSellers(t *testing.T) {
	const payload = `[{"SellerName":"ShopA","Price":1200}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GMKT.INC/Catalog/CatalogHandler.ashx", r.URL.Path)
		assert.Equal(t, "GetCatalogSellerList", r.URL.Query().Get("method"))
		assert.Equal(t, "1001", r.URL.Query().Get("catalogNo"))
		assert.Equal(t, "qmatch-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "qmatch-test")
	body, err := client.FetchCatalogSellers(context.Background(), 1001)
	assert.NoError(t, err)
	assert.Equal(t, []byte(payload), body)
}

func TestFetchCatalogSellersNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "qmatch-test")
	body, err := client.FetchCatalogSellers(context.Background(), 1001)
	assert.NoError(t, err)
	assert.Nil(t, body)
}

func TestFetchCatalogSellersEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "qmatch-test")
	body, err := client.FetchCatalogSellers(context.Background(), 1001)
	assert.NoError(t, err)
	assert.Nil(t, body)
}
