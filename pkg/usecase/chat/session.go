package chat

import (
	"context"
	"sync"

	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/usecase/forecast"
	"github.com/mkino/larder/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Session owns the in-memory ordered list of exchanges for one chat session
// and sequences the pipeline per user turn. Exchanges are updated by value
// (replace-in-list), so concurrent in-flight turns never alias each other's
// state. Nothing is persisted and nothing is retried; every failure surfaces
// once.
type Session struct {
	classifier *classifier
	optimizer  *optimizer
	executor   *executor
	explainer  *explainer
	translator adapter.Translator
	api        adapter.InventoryAPI

	mu          sync.RWMutex
	exchanges   []model.Exchange
	explainTmpl string
}

// NewInput contains the dependencies for a chat session.
type NewInput struct {
	LLM        adapter.LLM
	Translator adapter.Translator
	API        adapter.InventoryAPI

	// ExplainTemplate overrides the built-in explanation instructions.
	// Empty means the default.
	ExplainTemplate string
}

func New(input NewInput) *Session {
	tmpl := input.ExplainTemplate
	if tmpl == "" {
		tmpl = DefaultExplainTemplate()
	}

	return &Session{
		classifier:  newClassifier(input.LLM),
		optimizer:   newOptimizer(input.LLM),
		executor:    newExecutor(input.API),
		explainer:   newExplainer(input.LLM),
		translator:  input.Translator,
		api:         input.API,
		explainTmpl: tmpl,
	}
}

// Exchanges returns a snapshot of all exchanges in submission order.
func (s *Session) Exchanges() []model.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// ExplainTemplate returns the current explanation instruction block.
func (s *Session) ExplainTemplate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.explainTmpl
}

// SetExplainTemplate replaces the explanation instruction block for
// subsequent turns. It affects phrasing only.
func (s *Session) SetExplainTemplate(tmpl string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tmpl == "" {
		tmpl = DefaultExplainTemplate()
	}
	s.explainTmpl = tmpl
}

func (s *Session) append(ex model.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, ex)
}

func (s *Session) update(ex model.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.exchanges {
		if s.exchanges[i].ID == ex.ID {
			s.exchanges[i] = ex
			return
		}
	}
}

// Submit runs one user turn through the pipeline to a terminal stage and
// returns the finished exchange. Failures never return as errors; they land
// the exchange in the error stage with the raw message preserved for
// display. Safe to call from multiple goroutines.
func (s *Session) Submit(ctx context.Context, question string) model.Exchange {
	ex := model.NewExchange(question)
	s.append(ex)

	fail := func(err error) model.Exchange {
		ex.Err = err.Error()
		ex.Stage = model.StageError
		s.update(ex)
		return ex
	}

	intent, err := s.classifier.Classify(ctx, question)
	if err != nil {
		return fail(err)
	}

	if !intent.IsQuery() {
		ex.Stage = model.StageActing
		s.update(ex)

		msg, err := s.executor.Execute(ctx, intent.Action)
		if err != nil {
			return fail(err)
		}

		ex.Response = msg
		ex.Stage = model.StageDone
		s.update(ex)
		return ex
	}

	ex.Stage = model.StageOptimizing
	s.update(ex)

	optimized, err := s.optimizer.Optimize(ctx, question)
	if err != nil {
		return fail(err)
	}
	ex.Optimized = optimized
	ex.Stage = model.StageTranslating
	s.update(ex)

	// The translation and the fallback-prediction fetch are independent, so
	// they run concurrently and the pipeline proceeds only once both settle.
	var (
		result   *model.QueryResult
		fallback []model.Prediction
	)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		r, err := s.translator.Translate(egctx, schemaContext+"\n\nQuestion: "+optimized)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	eg.Go(func() error {
		items, err := s.api.GetInventory(egctx)
		if err != nil {
			// Degrade to no fallback data rather than blocking the answer.
			logging.From(egctx).Warn("inventory fetch for fallback predictions failed", "error", err)
			return nil
		}
		fallback = forecast.Fallback(items)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return fail(err)
	}

	ex.Result = result

	if result.IsError() {
		// A SQL-level failure is a normal outcome: show the error text
		// directly and skip the explainer.
		ex.Response = result.Error
		ex.Stage = model.StageDone
		s.update(ex)
		return ex
	}

	ex.Stage = model.StageExplaining
	s.update(ex)

	text, err := s.explainer.Explain(ctx, s.ExplainTemplate(), ex.Question, result, fallback)
	if err != nil {
		return fail(err)
	}

	ex.Response = text
	ex.Stage = model.StageDone
	s.update(ex)
	return ex
}
