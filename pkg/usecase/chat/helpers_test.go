package chat

import (
	"context"
	"errors"

	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
)

// mockLLM is a mock implementation of adapter.LLM for testing
type mockLLM struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return "", errors.New("not implemented")
}

// mockTranslator is a mock implementation of adapter.Translator
type mockTranslator struct {
	translateFunc func(ctx context.Context, question string) (*model.QueryResult, error)
	questions     []string
}

func (m *mockTranslator) Translate(ctx context.Context, question string) (*model.QueryResult, error) {
	m.questions = append(m.questions, question)
	if m.translateFunc != nil {
		return m.translateFunc(ctx, question)
	}
	return nil, errors.New("not implemented")
}

// mockAPI overrides the InventoryAPI calls a test needs; unstubbed calls
// panic through the embedded nil interface.
type mockAPI struct {
	adapter.InventoryAPI

	listIngredientsFunc           func(ctx context.Context) ([]model.Ingredient, error)
	createIngredientFunc          func(ctx context.Context, name, unit string) (*model.Ingredient, error)
	listRestaurantIngredientsFunc func(ctx context.Context) ([]model.Ingredient, error)
	addRestaurantIngredientFunc   func(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays int) (*model.RestaurantIngredient, error)
	getInventoryFunc              func(ctx context.Context) ([]model.InventoryItem, error)
	restockFunc                   func(ctx context.Context, ingredientID int64, qty float64) (*model.RestockResult, error)
	listMenuItemsFunc             func(ctx context.Context) ([]model.MenuItem, error)
	createMenuItemFunc            func(ctx context.Context, name string, price float64) (*model.MenuItem, error)
	deleteMenuItemFunc            func(ctx context.Context, menuItemID int64) error
	linkMenuItemIngredientFunc    func(ctx context.Context, menuItemID, ingredientID int64, qtyPerItem float64) error
}

func (m *mockAPI) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return m.listIngredientsFunc(ctx)
}

func (m *mockAPI) CreateIngredient(ctx context.Context, name, unit string) (*model.Ingredient, error) {
	return m.createIngredientFunc(ctx, name, unit)
}

func (m *mockAPI) ListRestaurantIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return m.listRestaurantIngredientsFunc(ctx)
}

func (m *mockAPI) AddRestaurantIngredient(ctx context.Context, ingredientID int64, leadTimeDays, safetyStockDays int) (*model.RestaurantIngredient, error) {
	return m.addRestaurantIngredientFunc(ctx, ingredientID, leadTimeDays, safetyStockDays)
}

func (m *mockAPI) GetInventory(ctx context.Context) ([]model.InventoryItem, error) {
	return m.getInventoryFunc(ctx)
}

func (m *mockAPI) Restock(ctx context.Context, ingredientID int64, qty float64) (*model.RestockResult, error) {
	return m.restockFunc(ctx, ingredientID, qty)
}

func (m *mockAPI) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	return m.listMenuItemsFunc(ctx)
}

func (m *mockAPI) CreateMenuItem(ctx context.Context, name string, price float64) (*model.MenuItem, error) {
	return m.createMenuItemFunc(ctx, name, price)
}

func (m *mockAPI) DeleteMenuItem(ctx context.Context, menuItemID int64) error {
	return m.deleteMenuItemFunc(ctx, menuItemID)
}

func (m *mockAPI) LinkMenuItemIngredient(ctx context.Context, menuItemID, ingredientID int64, qtyPerItem float64) error {
	return m.linkMenuItemIngredientFunc(ctx, menuItemID, ingredientID, qtyPerItem)
}

func f64(v float64) *float64 { return &v }
