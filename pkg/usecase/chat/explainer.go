package chat

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
)

//go:embed prompt/explain.md
var defaultExplainTemplate string

// DefaultExplainTemplate is the built-in explanation instruction block. The
// session owner may replace it with a user-edited version.
func DefaultExplainTemplate() string {
	return defaultExplainTemplate
}

// explainer turns query rows back into prose via the language model.
type explainer struct {
	llm adapter.LLM
}

func newExplainer(llm adapter.LLM) *explainer {
	return &explainer{llm: llm}
}

// Explain builds the explanation prompt from the instruction template, the
// user's question and the result rows. When any fallback prediction has a
// usable days-left value, a supplementary stockout block is appended, sorted
// ascending by days left.
func (e *explainer) Explain(ctx context.Context, tmpl, question string, result *model.QueryResult, fallback []model.Prediction) (string, error) {
	rowsJSON, err := json.MarshalIndent(result.Results, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal result rows")
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(tmpl))
	sb.WriteString("\n\nQuestion:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nResult rows (JSON):\n")
	sb.Write(rowsJSON)

	if block := fallbackBlock(fallback); block != "" {
		sb.WriteString("\n\nEstimated days until stockout (computed from current stock and usage):\n")
		sb.WriteString(block)
	}

	text, err := e.llm.Generate(ctx, sb.String())
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate explanation")
	}

	return strings.TrimSpace(text), nil
}

// fallbackBlock renders the predictions that have a days-left estimate.
// Returns "" when none do, in which case no block is appended.
func fallbackBlock(preds []model.Prediction) string {
	withDays := make([]model.Prediction, 0, len(preds))
	for _, p := range preds {
		if p.DaysUntilStockout != nil {
			withDays = append(withDays, p)
		}
	}
	if len(withDays) == 0 {
		return ""
	}

	sort.SliceStable(withDays, func(i, j int) bool {
		return *withDays[i].DaysUntilStockout < *withDays[j].DaysUntilStockout
	})

	var sb strings.Builder
	for _, p := range withDays {
		sb.WriteString(fmt.Sprintf("- %s: %.2f days left (stock %.1f, on order %.1f, usage %.2f/day)\n",
			p.IngredientName, *p.DaysUntilStockout, p.CurrentInventory, p.OnOrderQty, p.AvgDailyUsage))
	}
	return sb.String()
}
