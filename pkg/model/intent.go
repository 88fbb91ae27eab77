package model

import "github.com/m-mizutani/goerr/v2"

var ErrInvalidAction = goerr.New("invalid action type")

// ActionType discriminates the four supported mutating actions.
type ActionType string

const (
	ActionAddMenuItem    ActionType = "add_menu_item"
	ActionRestock        ActionType = "restock"
	ActionAddIngredient  ActionType = "add_ingredient"
	ActionDeleteMenuItem ActionType = "delete_menu_item"
)

// Validate checks if the action type is one of the supported actions
func (t ActionType) Validate() error {
	switch t {
	case ActionAddMenuItem, ActionRestock, ActionAddIngredient, ActionDeleteMenuItem:
		return nil
	default:
		return goerr.Wrap(ErrInvalidAction, "unknown action", goerr.Value("action", string(t)))
	}
}

// Intent is the classified meaning of a user utterance: either a read-only
// query (Action is nil) or one mutating action call.
type Intent struct {
	Action *ActionCall
}

// IsQuery reports whether the utterance should go down the NL→SQL path.
func (x Intent) IsQuery() bool {
	return x.Action == nil
}

// Query is the safe default intent. A malformed classifier response must
// never be treated as an action.
func Query() Intent {
	return Intent{}
}

// ActionCall carries the discriminator, exactly one populated parameter set,
// and a short human-readable confirmation from the classifier.
type ActionCall struct {
	Type         ActionType
	Confirmation string

	AddMenuItem    *AddMenuItemParams
	Restock        *RestockParams
	AddIngredient  *AddIngredientParams
	DeleteMenuItem *DeleteMenuItemParams
}

// RecipeLine names one ingredient of a new dish and how much of it goes in.
type RecipeLine struct {
	IngredientName string  `json:"ingredient_name"`
	QtyPerItem     float64 `json:"qty_per_item"`
}

type AddMenuItemParams struct {
	ItemName    string       `json:"item_name"`
	Price       float64      `json:"price"`
	Ingredients []RecipeLine `json:"ingredients"`
}

type RestockParams struct {
	IngredientName string  `json:"ingredient_name"`
	Qty            float64 `json:"qty"`
}

type AddIngredientParams struct {
	IngredientName string `json:"ingredient_name"`
	Unit           string `json:"unit"`
}

type DeleteMenuItemParams struct {
	ItemName string `json:"item_name"`
}
