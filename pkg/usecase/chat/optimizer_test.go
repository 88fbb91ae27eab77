package chat

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestOptimize(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the trimmed rewrite", func(t *testing.T) {
		llm := &mockLLM{
			generateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "  Which ingredients have the lowest latest inventory_end?\n", nil
			},
		}

		o := newOptimizer(llm)
		got := gt.R1(o.Optimize(ctx, "what's running low?")).NoError(t)
		gt.V(t, got).Equal("Which ingredients have the lowest latest inventory_end?")

		// the prompt carries the schema context and the original question
		gt.A(t, llm.prompts).Length(1)
		gt.S(t, llm.prompts[0]).Contains("daily_inventory_log")
		gt.S(t, llm.prompts[0]).Contains("what's running low?")
	})

	t.Run("empty rewrite keeps the original question", func(t *testing.T) {
		llm := &mockLLM{
			generateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "   \n", nil
			},
		}

		o := newOptimizer(llm)
		got := gt.R1(o.Optimize(ctx, "already precise question")).NoError(t)
		gt.V(t, got).Equal("already precise question")
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		o := newOptimizer(&mockLLM{})
		_, err := o.Optimize(ctx, "anything")
		gt.Error(t, err)
	})
}
