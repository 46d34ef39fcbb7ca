// Package kitchen owns the display state and orchestrates generation: it
// validates the pantry, calls the recipe service, reveals text results
// before images resolve, and maps failures to user-facing messages.
package kitchen

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fridgechef/internal/ai"
	"fridgechef/internal/cache"
	"fridgechef/internal/config"
	"fridgechef/internal/credential"
	"fridgechef/internal/pantry"
)

type generator interface {
	GenerateRecipes(ctx context.Context, ingredients []string, meal pantry.MealTime) (*ai.Batch, error)
	GenerateRecipeImage(ctx context.Context, title string) string
}

const (
	msgValidation  = "Add at least one ingredient before generating recipes."
	msgReauth      = "Your API key was rejected. Select or enter a key, then try again."
	msgGeneric     = "Recipe generation failed. Please try again."
	msgUnsupported = "Key selection isn't available in this environment. Set " + config.CredentialEnvVar + " and restart."
)

const generateTimeout = 3 * time.Minute

// Session is the single user session behind the page. All state lives here,
// guarded by one mutex; network results merge back in under the same lock.
type Session struct {
	mu      sync.Mutex
	pantry  pantry.List
	meal    pantry.MealTime
	recipes []ai.Recipe
	message string
	loading bool
	batchID string
	// token counts generation runs; results carrying a stale token are
	// dropped so an overlapping run can't clobber a newer one.
	token uint64

	gate  *credential.Gate
	gen   generator
	cache cache.Cache
	wg    sync.WaitGroup
}

func NewSession(gate *credential.Gate, gen generator, c cache.Cache) *Session {
	return &Session{
		gate:  gate,
		gen:   gen,
		cache: c,
	}
}

func (s *Session) AddIngredient(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pantry.Add(text)
}

func (s *Session) RemoveIngredient(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pantry.Remove(i)
}

func (s *Session) ResetIngredients() {
	s.mu.Lock()
	s.pantry.Reset()
	s.mu.Unlock()
}

func (s *Session) SetMealTime(meal pantry.MealTime) {
	s.mu.Lock()
	s.meal = meal
	s.mu.Unlock()
}

func (s *Session) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// View is a consistent snapshot of everything the page renders.
type View struct {
	Checking     bool
	Gated        bool
	Loading      bool
	Ingredients  []string
	Meal         pantry.MealTime
	MealTimes    []pantry.MealTime
	Recipes      []ai.Recipe
	Message      string
	Connectivity string
	BatchID      string
}

func (s *Session) Snapshot() View {
	state := s.gate.State()
	test := s.gate.ConnectivityResult()

	s.mu.Lock()
	defer s.mu.Unlock()
	recipes := make([]ai.Recipe, len(s.recipes))
	copy(recipes, s.recipes)
	return View{
		Checking:     state == credential.StateUnknown,
		Gated:        state == credential.StateAbsent,
		Loading:      s.loading,
		Ingredients:  s.pantry.Items(),
		Meal:         s.meal,
		MealTimes:    pantry.MealTimes(),
		Recipes:      recipes,
		Message:      s.message,
		Connectivity: test.String(),
		BatchID:      s.batchID,
	}
}

// Generate kicks off a generation run in the background. An empty pantry is
// a local validation failure and never reaches the service. A run already in
// flight is not cancelled; it is superseded, its results dropped on arrival.
func (s *Session) Generate() {
	s.mu.Lock()
	if s.pantry.Len() == 0 {
		s.message = msgValidation
		s.mu.Unlock()
		return
	}
	req := pantry.Request{Ingredients: s.pantry.Items(), Meal: s.meal}
	s.token++
	token := s.token
	s.loading = true
	s.message = ""
	s.recipes = nil
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		s.run(ctx, token, req)
	}()
}

func (s *Session) run(ctx context.Context, token uint64, req pantry.Request) {
	hash := req.Hash()
	if batch, err := s.fromCache(ctx, hash); err == nil {
		slog.InfoContext(ctx, "serving cached batch", "hash", hash)
		s.publish(token, batch.Recipes)
		return
	}

	batch, err := s.gen.GenerateRecipes(ctx, req.Ingredients, req.Meal)
	if err != nil {
		slog.ErrorContext(ctx, "generate error", "hash", hash, "error", err)
		if ai.Classify(err).Kind == ai.KindCredential {
			s.gate.MarkAbsent()
			s.fail(token, msgReauth)
		} else {
			s.fail(token, msgGeneric)
		}
		return
	}

	// two-phase reveal: text goes up right away, images trickle in
	if !s.publish(token, batch.Recipes) {
		slog.InfoContext(ctx, "discarding superseded batch", "hash", hash)
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range batch.Recipes {
		g.Go(func() error {
			url := s.gen.GenerateRecipeImage(ctx, batch.Recipes[i].Title)
			s.mergeImage(token, i, url)
			return nil
		})
	}
	// enrichment never errors, Wait just marks the batch fully settled
	_ = g.Wait()

	s.save(ctx, token, hash)
}

func (s *Session) publish(token uint64, recipes []ai.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	out := make([]ai.Recipe, len(recipes))
	copy(out, recipes)
	s.recipes = out
	s.loading = false
	s.message = ""
	s.batchID = uuid.NewString()
	return true
}

func (s *Session) mergeImage(token uint64, i int, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || i >= len(s.recipes) {
		return
	}
	s.recipes[i].ImageURL = url
}

func (s *Session) fail(token uint64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return
	}
	s.loading = false
	s.message = message
	s.recipes = nil
}

func (s *Session) fromCache(ctx context.Context, hash string) (*ai.Batch, error) {
	rc, err := s.cache.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var batch ai.Batch
	if err := json.NewDecoder(rc).Decode(&batch); err != nil {
		return nil, err
	}
	if len(batch.Recipes) != ai.RecipeCount {
		return nil, cache.ErrNotFound
	}
	return &batch, nil
}

func (s *Session) save(ctx context.Context, token uint64, hash string) {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		return
	}
	recipes := make([]ai.Recipe, len(s.recipes))
	copy(recipes, s.recipes)
	s.mu.Unlock()

	raw, err := json.Marshal(ai.Batch{Recipes: recipes})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode batch for cache", "hash", hash, "error", err)
		return
	}
	if err := s.cache.Put(ctx, hash, string(raw)); err != nil {
		slog.ErrorContext(ctx, "failed to cache batch", "hash", hash, "error", err)
	}
}

// Wait blocks until in-flight generation runs finish. Used by shutdown.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Ready round-trips the cache so the pod doesn't take traffic with a broken
// cache directory.
func (s *Session) Ready(ctx context.Context) error {
	if err := s.cache.Put(ctx, "ready-probe", "ok"); err != nil {
		return err
	}
	rc, err := s.cache.Get(ctx, "ready-probe")
	if err != nil {
		return err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(data)) != "ok" {
		return cache.ErrNotFound
	}
	return nil
}
