package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
)

const (
	defaultLeadTimeDays    = 2
	defaultSafetyStockDays = 2
)

// executor performs the four supported mutating actions against the data
// API. Entity names are resolved by case-insensitive exact match; a miss is
// reported as a normal result message naming the unresolved entity, never as
// an error, so the exchange still finishes with actionable text. Errors are
// reserved for transport failures.
type executor struct {
	api adapter.InventoryAPI
}

func newExecutor(api adapter.InventoryAPI) *executor {
	return &executor{api: api}
}

func (e *executor) Execute(ctx context.Context, call *model.ActionCall) (string, error) {
	switch call.Type {
	case model.ActionRestock:
		return e.restock(ctx, call.Restock)
	case model.ActionAddMenuItem:
		return e.addMenuItem(ctx, call.AddMenuItem)
	case model.ActionAddIngredient:
		return e.addIngredient(ctx, call.AddIngredient)
	case model.ActionDeleteMenuItem:
		return e.deleteMenuItem(ctx, call.DeleteMenuItem)
	default:
		return "", goerr.Wrap(model.ErrInvalidAction, "unsupported action", goerr.Value("action", call.Type))
	}
}

func findIngredient(list []model.Ingredient, name string) *model.Ingredient {
	for i := range list {
		if strings.EqualFold(list[i].IngredientName, name) {
			return &list[i]
		}
	}
	return nil
}

func findMenuItem(list []model.MenuItem, name string) *model.MenuItem {
	for i := range list {
		if strings.EqualFold(list[i].ItemName, name) {
			return &list[i]
		}
	}
	return nil
}

func (e *executor) restock(ctx context.Context, params *model.RestockParams) (string, error) {
	list, err := e.api.ListRestaurantIngredients(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list ingredients")
	}

	ing := findIngredient(list, params.IngredientName)
	if ing == nil {
		return fmt.Sprintf("I couldn't find an ingredient named %q in your inventory, so nothing was restocked. Check the spelling or add it first.", params.IngredientName), nil
	}

	result, err := e.api.Restock(ctx, ing.IngredientID, params.Qty)
	if err != nil {
		return "", goerr.Wrap(err, "failed to restock ingredient", goerr.Value("ingredient", ing.IngredientName))
	}

	return fmt.Sprintf("Restocked %s by %.1f %s. New stock level: %.1f %s.",
		ing.IngredientName, params.Qty, ing.Unit, result.InventoryEnd, ing.Unit), nil
}

func (e *executor) addMenuItem(ctx context.Context, params *model.AddMenuItemParams) (string, error) {
	item, err := e.api.CreateMenuItem(ctx, params.ItemName, params.Price)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create menu item", goerr.Value("item", params.ItemName))
	}

	catalog, err := e.api.ListIngredients(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list ingredient catalog")
	}

	// Linking is best-effort: the item already exists, so report partial
	// success instead of failing the whole action.
	var linked, missing []string
	for _, line := range params.Ingredients {
		ing := findIngredient(catalog, line.IngredientName)
		if ing == nil {
			missing = append(missing, line.IngredientName)
			continue
		}
		if err := e.api.LinkMenuItemIngredient(ctx, item.MenuItemID, ing.IngredientID, line.QtyPerItem); err != nil {
			missing = append(missing, line.IngredientName)
			continue
		}
		linked = append(linked, ing.IngredientName)
	}

	msg := fmt.Sprintf("Added %q to the menu at %.2f.", item.ItemName, item.Price)
	if len(linked) > 0 {
		msg += fmt.Sprintf(" Linked ingredients: %s.", strings.Join(linked, ", "))
	}
	if len(missing) > 0 {
		msg += fmt.Sprintf(" These ingredients could not be found and were not linked: %s.", strings.Join(missing, ", "))
	}
	return msg, nil
}

func (e *executor) addIngredient(ctx context.Context, params *model.AddIngredientParams) (string, error) {
	ing, err := e.api.CreateIngredient(ctx, params.IngredientName, params.Unit)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create ingredient", goerr.Value("ingredient", params.IngredientName))
	}

	if _, err := e.api.AddRestaurantIngredient(ctx, ing.IngredientID, defaultLeadTimeDays, defaultSafetyStockDays); err != nil {
		return "", goerr.Wrap(err, "failed to link ingredient to restaurant", goerr.Value("ingredient", ing.IngredientName))
	}

	return fmt.Sprintf("Added %s (%s) to the catalog and started tracking it for your restaurant.",
		ing.IngredientName, ing.Unit), nil
}

func (e *executor) deleteMenuItem(ctx context.Context, params *model.DeleteMenuItemParams) (string, error) {
	items, err := e.api.ListMenuItems(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list menu items")
	}

	item := findMenuItem(items, params.ItemName)
	if item == nil {
		return fmt.Sprintf("I couldn't find a menu item named %q, so nothing was deleted.", params.ItemName), nil
	}

	if err := e.api.DeleteMenuItem(ctx, item.MenuItemID); err != nil {
		return "", goerr.Wrap(err, "failed to delete menu item", goerr.Value("item", item.ItemName))
	}

	return fmt.Sprintf("Removed %q from the menu.", item.ItemName), nil
}
