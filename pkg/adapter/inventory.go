package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/model"
)

// InventoryAPI is the typed Data-Access Client for the inventory REST API.
// Every call either returns typed data or fails with the HTTP status and
// message attached. No retries happen here; failures propagate to callers.
type InventoryAPI interface {
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
	CreateIngredient(ctx context.Context, name, unit string) (*model.Ingredient, error)
	ListRestaurantIngredients(ctx context.Context) ([]model.Ingredient, error)
	AddRestaurantIngredient(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays int) (*model.RestaurantIngredient, error)
	RemoveRestaurantIngredient(ctx context.Context, ingredientID int64) error
	PatchRestaurantIngredient(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays *int) (*model.RestaurantIngredient, error)
	GetInventory(ctx context.Context) ([]model.InventoryItem, error)
	GetInventoryHistory(ctx context.Context, ingredientID int64, days int) ([]model.InventoryItem, error)
	Restock(ctx context.Context, ingredientID int64, qty float64) (*model.RestockResult, error)
	LogUsage(ctx context.Context, ingredientID int64, qty float64) error
	ListMenuItems(ctx context.Context) ([]model.MenuItem, error)
	CreateMenuItem(ctx context.Context, name string, price float64) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, menuItemID int64) error
	ListMenuItemIngredients(ctx context.Context, menuItemID int64) ([]model.MenuItemIngredient, error)
	LinkMenuItemIngredient(ctx context.Context, menuItemID, ingredientID int64, qtyPerItem float64) error
	GetPredictions(ctx context.Context) ([]model.Prediction, error)
}

type InventoryClient struct {
	baseURL      string
	restaurantID int64
	httpClient   *http.Client
}

type InventoryOption func(*InventoryClient)

func WithInventoryHTTPClient(client *http.Client) InventoryOption {
	return func(c *InventoryClient) {
		c.httpClient = client
	}
}

func WithRestaurantID(id int64) InventoryOption {
	return func(c *InventoryClient) {
		c.restaurantID = id
	}
}

// NewInventoryAPI creates a Data-Access Client for the given backend base URL.
func NewInventoryAPI(baseURL string, opts ...InventoryOption) *InventoryClient {
	c := &InventoryClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		restaurantID: 1,
		httpClient:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses become errors carrying status and body.
func (c *InventoryClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call inventory api", goerr.Value("path", path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read inventory api response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New("inventory api returned error",
			goerr.Value("status", resp.StatusCode),
			goerr.Value("path", path),
			goerr.Value("body", string(raw)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to unmarshal inventory api response", goerr.Value("path", path))
	}

	return nil
}

func (c *InventoryClient) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	var out []model.Ingredient
	if err := c.do(ctx, http.MethodGet, "/api/ingredients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) CreateIngredient(ctx context.Context, name, unit string) (*model.Ingredient, error) {
	in := map[string]any{
		"ingredient_name": name,
		"unit":            unit,
	}
	var out model.Ingredient
	if err := c.do(ctx, http.MethodPost, "/api/ingredients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *InventoryClient) ListRestaurantIngredients(ctx context.Context) ([]model.Ingredient, error) {
	var out []model.Ingredient
	path := fmt.Sprintf("/api/restaurants/%d/ingredients", c.restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) AddRestaurantIngredient(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays int) (*model.RestaurantIngredient, error) {
	in := map[string]any{
		"ingredient_id":     ingredientID,
		"lead_time_days":    leadTimeDays,
		"safety_stock_days": safetyStockDays,
	}
	var out model.RestaurantIngredient
	path := fmt.Sprintf("/api/restaurants/%d/ingredients", c.restaurantID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *InventoryClient) RemoveRestaurantIngredient(ctx context.Context, ingredientID int64) error {
	path := fmt.Sprintf("/api/restaurants/%d/ingredients/%d", c.restaurantID, ingredientID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *InventoryClient) PatchRestaurantIngredient(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays *int) (*model.RestaurantIngredient, error) {
	in := map[string]any{}
	if leadTimeDays != nil {
		in["lead_time_days"] = *leadTimeDays
	}
	if safetyStockDays != nil {
		in["safety_stock_days"] = *safetyStockDays
	}
	var out model.RestaurantIngredient
	path := fmt.Sprintf("/api/restaurants/%d/ingredients/%d", c.restaurantID, ingredientID)
	if err := c.do(ctx, http.MethodPatch, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *InventoryClient) GetInventory(ctx context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	path := fmt.Sprintf("/api/restaurants/%d/inventory", c.restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) GetInventoryHistory(ctx context.Context, ingredientID int64, days int) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	path := fmt.Sprintf("/api/restaurants/%d/inventory/%d/history?days=%d", c.restaurantID, ingredientID, days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) Restock(ctx context.Context, ingredientID int64, qty float64) (*model.RestockResult, error) {
	in := map[string]any{"restock_qty": qty}
	var out model.RestockResult
	path := fmt.Sprintf("/api/restaurants/%d/inventory/%d/restock", c.restaurantID, ingredientID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *InventoryClient) LogUsage(ctx context.Context, ingredientID int64, qty float64) error {
	in := map[string]any{"qty_used": qty}
	path := fmt.Sprintf("/api/restaurants/%d/inventory/%d/usage", c.restaurantID, ingredientID)
	return c.do(ctx, http.MethodPost, path, in, nil)
}

func (c *InventoryClient) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	var out []model.MenuItem
	path := fmt.Sprintf("/api/restaurants/%d/menu", c.restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) CreateMenuItem(ctx context.Context, name string, price float64) (*model.MenuItem, error) {
	in := map[string]any{
		"item_name": name,
		"price":     price,
	}
	var out model.MenuItem
	path := fmt.Sprintf("/api/restaurants/%d/menu", c.restaurantID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *InventoryClient) DeleteMenuItem(ctx context.Context, menuItemID int64) error {
	path := fmt.Sprintf("/api/menu-items/%d", menuItemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *InventoryClient) ListMenuItemIngredients(ctx context.Context, menuItemID int64) ([]model.MenuItemIngredient, error) {
	var out []model.MenuItemIngredient
	path := fmt.Sprintf("/api/menu-items/%d/ingredients", menuItemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) LinkMenuItemIngredient(ctx context.Context, menuItemID, ingredientID int64, qtyPerItem float64) error {
	in := map[string]any{
		"ingredient_id": ingredientID,
		"qty_per_item":  qtyPerItem,
	}
	path := fmt.Sprintf("/api/menu-items/%d/ingredients", menuItemID)
	return c.do(ctx, http.MethodPost, path, in, nil)
}

func (c *InventoryClient) GetPredictions(ctx context.Context) ([]model.Prediction, error) {
	// The predictions endpoint merges ML forecasts with server-side simple
	// estimates; "all" carries both tiers tagged by confidence.
	var out struct {
		All []model.Prediction `json:"all"`
	}
	path := fmt.Sprintf("/api/restaurants/%d/predictions", c.restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.All, nil
}
