package chat

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/utils/logging"
)

//go:embed prompt/intent.md
var intentPromptRaw string

var intentPromptTmpl = template.Must(template.New("intent").Parse(intentPromptRaw))

// classifier decides whether an utterance is a read-only query or one of the
// four supported mutating actions.
type classifier struct {
	llm adapter.LLM
}

func newClassifier(llm adapter.LLM) *classifier {
	return &classifier{llm: llm}
}

// Classify sends the utterance to the language model and parses its verdict.
// A transport failure is returned as an error; any malformed or incomplete
// verdict silently downgrades to the read-only query intent so that a broken
// model response can never trigger a mutation.
func (c *classifier) Classify(ctx context.Context, question string) (model.Intent, error) {
	var buf bytes.Buffer
	if err := intentPromptTmpl.Execute(&buf, map[string]any{"Question": question}); err != nil {
		return model.Intent{}, goerr.Wrap(err, "failed to execute intent prompt template")
	}

	text, err := c.llm.Generate(ctx, buf.String())
	if err != nil {
		return model.Intent{}, goerr.Wrap(err, "failed to classify intent")
	}

	intent := parseVerdict(ctx, text)
	return intent, nil
}

type rawVerdict struct {
	Type         string           `json:"type"`
	Action       model.ActionType `json:"action"`
	Params       json.RawMessage  `json:"params"`
	Confirmation string           `json:"confirmation"`
}

// parseVerdict turns raw model output into an intent. Every failure path
// lands on the safe query default.
func parseVerdict(ctx context.Context, text string) model.Intent {
	raw, ok := extractJSON(text)
	if !ok {
		return model.Query()
	}

	var verdict rawVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		logging.From(ctx).Debug("unparseable intent verdict", "error", err)
		return model.Query()
	}

	if verdict.Type != "action" || verdict.Action == "" || len(verdict.Params) == 0 {
		return model.Query()
	}
	if err := verdict.Action.Validate(); err != nil {
		logging.From(ctx).Debug("unknown action in verdict", "action", verdict.Action)
		return model.Query()
	}

	call := &model.ActionCall{
		Type:         verdict.Action,
		Confirmation: verdict.Confirmation,
	}

	switch verdict.Action {
	case model.ActionAddMenuItem:
		var params model.AddMenuItemParams
		if json.Unmarshal(verdict.Params, &params) != nil || params.ItemName == "" {
			return model.Query()
		}
		for i := range params.Ingredients {
			if params.Ingredients[i].QtyPerItem <= 0 {
				params.Ingredients[i].QtyPerItem = 1.0
			}
		}
		call.AddMenuItem = &params

	case model.ActionRestock:
		var params model.RestockParams
		if json.Unmarshal(verdict.Params, &params) != nil || params.IngredientName == "" || params.Qty <= 0 {
			return model.Query()
		}
		call.Restock = &params

	case model.ActionAddIngredient:
		var params model.AddIngredientParams
		if json.Unmarshal(verdict.Params, &params) != nil || params.IngredientName == "" {
			return model.Query()
		}
		if params.Unit == "" {
			params.Unit = "unit"
		}
		call.AddIngredient = &params

	case model.ActionDeleteMenuItem:
		var params model.DeleteMenuItemParams
		if json.Unmarshal(verdict.Params, &params) != nil || params.ItemName == "" {
			return model.Query()
		}
		call.DeleteMenuItem = &params
	}

	return model.Intent{Action: call}
}

// extractJSON returns the first balanced top-level {...} substring. The model
// may wrap its verdict in prose, and params may contain nested braces, so
// this walks the text tracking brace depth and JSON string state instead of
// using a regexp.
func extractJSON(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start < 0 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}

		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	return "", false
}
