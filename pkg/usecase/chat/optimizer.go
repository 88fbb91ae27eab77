package chat

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
)

//go:embed prompt/optimize.md
var optimizePromptRaw string

var optimizePromptTmpl = template.Must(template.New("optimize").Parse(optimizePromptRaw))

//go:embed prompt/schema.md
var schemaContext string

// optimizer rewrites a vague question into a schema-precise one. The rewrite
// is passed through unvalidated; an already precise question comes back
// unchanged.
type optimizer struct {
	llm adapter.LLM
}

func newOptimizer(llm adapter.LLM) *optimizer {
	return &optimizer{llm: llm}
}

func (o *optimizer) Optimize(ctx context.Context, question string) (string, error) {
	var buf bytes.Buffer
	if err := optimizePromptTmpl.Execute(&buf, map[string]any{
		"Schema":   schemaContext,
		"Question": question,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute optimize prompt template")
	}

	text, err := o.llm.Generate(ctx, buf.String())
	if err != nil {
		return "", goerr.Wrap(err, "failed to optimize question")
	}

	rewritten := strings.TrimSpace(text)
	if rewritten == "" {
		return question, nil
	}
	return rewritten, nil
}
