package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches the marketplace's internal catalog seller feed. It
// parses nothing; the extraction engine owns interpretation of the
// bytes.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a seller-feed client for the marketplace base URL.
func NewClient(baseURL, userAgent string) *Client {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json, text/plain, */*")

	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// FetchCatalogSellers retrieves the raw seller list response for a
// catalog. A non-200 status or an empty body yields nil bytes, not an
// error: the feed simply had nothing usable.
func (c *Client) FetchCatalogSellers(ctx context.Context, catalogNo int64) ([]byte, error) {
	url := fmt.Sprintf(
		"%s/GMKT.INC/Catalog/CatalogHandler.ashx?method=GetCatalogSellerList&catalogNo=%d",
		c.baseURL, catalogNo)

	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("seller feed request failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, nil
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}
