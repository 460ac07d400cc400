package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"diet_tracker/internal/logger"
	"diet_tracker/internal/models"
)

const (
	// DefaultBaseURL is the public OpenFoodFacts endpoint.
	DefaultBaseURL = "https://world.openfoodfacts.org"

	// requestTimeout bounds every request; a stalled upstream must not block
	// the user interaction indefinitely.
	requestTimeout = 10 * time.Second

	defaultMaxRetries    = 3
	defaultBackoffFactor = 0.3

	// searchFields restricts search responses to what the projector needs.
	searchFields = "product_name,product_name_KR,code,brands,categories"
)

// Client talks to the OpenFoodFacts search and product endpoints.
type Client struct {
	baseURL       string
	httpc         *http.Client
	log           *logger.Logger
	maxRetries    int
	backoffFactor float64
	sleep         func(time.Duration) // injectable for tests
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		httpc:         &http.Client{Timeout: requestTimeout},
		log:           log,
		maxRetries:    defaultMaxRetries,
		backoffFactor: defaultBackoffFactor,
		sleep:         time.Sleep,
	}
}

type searchResponse struct {
	Products []models.RawProduct `json:"products"`
}

// httpStatusError marks a non-2xx response; those are never retried.
type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("openfoodfacts returned HTTP %d", e.status)
}

// Search issues a free-text product search, retrying transport failures with
// exponential backoff (backoffFactor * 2^attempt seconds). HTTP error
// responses and malformed bodies abort immediately. The query is expected to
// already be in the service's language; translation happens in the caller.
func (c *Client) Search(ctx context.Context, query string) ([]models.RawProduct, error) {
	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("fields", searchFields)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		products, err := c.doSearch(ctx, params)
		if err == nil {
			return products, nil
		}
		lastErr = err

		if isTransportError(err) {
			if c.log != nil {
				c.log.Errorw("food_search_transport_error", "err", err, "attempt", attempt+1, "max", c.maxRetries)
			}
			c.sleep(backoffDelay(c.backoffFactor, attempt))
			continue
		}
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) {
			if c.log != nil {
				c.log.Errorw("food_search_http_error", "status", statusErr.status)
			}
			return nil, err
		}
		// unexpected failure (decode error etc.): abort immediately
		if c.log != nil {
			c.log.Errorw("food_search_unexpected_error", "err", err)
		}
		return nil, err
	}
	return nil, fmt.Errorf("food search exhausted %d attempts: %w", c.maxRetries, lastErr)
}

// List fetches one page of the full catalog using the fixed query "food",
// mirroring the paginated "all foods" listing.
func (c *Client) List(ctx context.Context, page, pageSize int) ([]models.RawProduct, error) {
	params := url.Values{}
	params.Set("search_terms", "food")
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", searchFields)

	return c.doSearch(ctx, params)
}

func (c *Client) doSearch(ctx context.Context, params url.Values) ([]models.RawProduct, error) {
	reqURL := c.baseURL + "/cgi/search.pl?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err // *url.Error: transport-level, retryable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpStatusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err // body read failures are transport-level too
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return sr.Products, nil
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string         `json:"product_name"`
		Nutriments  map[string]any `json:"nutriments"`
	} `json:"product"`
}

// Nutrition fetches per-100g nutrition facts for a barcode. A response with
// status != 1 means the product is unknown and yields (nil, nil); callers must
// treat that as "lookup unavailable", not as zero nutrition.
func (c *Client) Nutrition(ctx context.Context, barcode string) (*models.NutritionInfo, error) {
	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create nutrition request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutrition request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpStatusError{status: resp.StatusCode}
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parse nutrition response: %w", err)
	}
	if pr.Status != 1 {
		return nil, nil
	}

	name := pr.Product.ProductName
	if name == "" {
		name = NoName
	}
	return &models.NutritionInfo{
		Name:     name,
		Calories: nutrimentValue(pr.Product.Nutriments, "energy-kcal_100g"),
		Proteins: nutrimentValue(pr.Product.Nutriments, "proteins_100g"),
		Carbs:    nutrimentValue(pr.Product.Nutriments, "carbohydrates_100g"),
		Fats:     nutrimentValue(pr.Product.Nutriments, "fat_100g"),
	}, nil
}

// NoName is the sentinel display name for products without one.
const NoName = "이름 없음"

// nutrimentValue coerces a nutriments field to float64 with a 0 default.
// OpenFoodFacts serves these inconsistently as numbers or strings.
func nutrimentValue(nutriments map[string]any, key string) float64 {
	switch v := nutriments[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// backoffDelay returns factor * 2^attempt seconds.
func backoffDelay(factor float64, attempt int) time.Duration {
	return time.Duration(factor * float64(int(1)<<attempt) * float64(time.Second))
}

// isTransportError reports whether err came from the transport layer
// (connection reset, timeout, chunked-transfer truncation). The http client
// wraps all of those in *url.Error; body-read failures after headers surface
// as raw net/io errors without a status having been classified.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
