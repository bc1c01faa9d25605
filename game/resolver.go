// Package game drives a guessing game over a loaded decision tree.
//
// A Resolver turns node ids into either a question to ask or a final guess.
// A game starts at node 0 and follows the child id attached to each answer
// until it reaches a guess:
//
//	r, _ := game.NewResolver(t)
//	res, _ := r.Start()
//	for !res.IsGuess() {
//	    next, _ := r.Follow(res.ID(), askUser(res.Question.Text))
//	    res, _ = r.Resolve(next)
//	}
//	fmt.Println("You are thinking of", res.Guess.Label)
package game

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/YuminosukeSato/treeguess/core/parallel"
	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/pkg/log"
	"github.com/YuminosukeSato/treeguess/question"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// Guess is the label predicted at a leaf.
type Guess struct {
	ID         int     `json:"id"`
	Label      string  `json:"guess"`
	Confidence float64 `json:"confidence"`
}

// Result holds exactly one of Question or Guess.
type Result struct {
	Question *question.Node
	Guess    *Guess
}

// IsGuess reports whether the game has ended.
func (r Result) IsGuess() bool { return r.Guess != nil }

// ID returns the id of the resolved node.
func (r Result) ID() int {
	if r.Guess != nil {
		return r.Guess.ID
	}
	if r.Question != nil {
		return r.Question.ID
	}
	return -1
}

// clone copies the pointees so cached results are never shared with callers.
func (r Result) clone() Result {
	if r.Question != nil {
		q := *r.Question
		r.Question = &q
	}
	if r.Guess != nil {
		g := *r.Guess
		r.Guess = &g
	}
	return r
}

// Resolver resolves node ids against one immutable tree. It is safe for
// concurrent use.
type Resolver struct {
	tree       *tree.Tree
	classifier *question.Classifier
	cache      *lru.Cache[int, Result]
	cacheSize  int
	logger     log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithCacheSize keeps up to size resolved nodes in an LRU cache. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(r *Resolver) error {
		if size < 0 {
			return errors.NewValidationError("cache.size", "must be >= 0", size)
		}
		if size == 0 {
			r.cache, r.cacheSize = nil, 0
			return nil
		}
		c, err := lru.New[int, Result](size)
		if err != nil {
			return errors.Wrap(err, "create resolver cache")
		}
		r.cache, r.cacheSize = c, size
		return nil
	}
}

// WithLogger sets the logger used for lookups and degraded formatting.
func WithLogger(l log.Logger) Option {
	return func(r *Resolver) error {
		r.logger = l.With(log.ComponentKey, "game")
		return nil
	}
}

// WithClassifier replaces the default feature classifier.
func WithClassifier(c *question.Classifier) Option {
	return func(r *Resolver) error {
		r.classifier = c
		return nil
	}
}

// NewResolver creates a Resolver over t.
func NewResolver(t *tree.Tree, opts ...Option) (*Resolver, error) {
	if t == nil {
		return nil, errors.NewValidationError("tree", "must not be nil", nil)
	}
	r := &Resolver{
		tree:       t,
		classifier: question.NewClassifier(),
		logger:     log.GetLogger().With(log.ComponentKey, "game"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Tree returns the tree the resolver reads from.
func (r *Resolver) Tree() *tree.Tree { return r.tree }

// Start resolves the root, where every game begins.
func (r *Resolver) Start() (Result, error) {
	return r.Resolve(0)
}

// Resolve returns the question or guess at id. Ids outside [0, node_count)
// fail with a NotFoundError.
func (r *Resolver) Resolve(id int) (Result, error) {
	if r.cache != nil {
		if res, ok := r.cache.Get(id); ok {
			return res.clone(), nil
		}
	}

	n, err := r.tree.Node(id)
	if err != nil {
		r.logger.Debug("node lookup failed", err, log.NodeIDKey, id)
		return Result{}, err
	}

	var res Result
	if n.IsLeaf() {
		p, err := r.tree.Prediction(id)
		if err != nil {
			return Result{}, err
		}
		res.Guess = &Guess{ID: id, Label: p.Label, Confidence: p.Confidence}
	} else {
		if err := errors.CheckFinite(n.Threshold); err != nil {
			r.logger.Warn("threshold rendered raw", err, log.NodeIDKey, id)
		}
		split := r.classifier.Classify(n.FeatureName, n.Threshold)
		q := question.Compose(split, n.FeatureName, n.Threshold, n.Left, n.Right)
		q.ID = id
		res.Question = &q
	}

	if r.cache != nil {
		r.cache.Add(id, res.clone())
	}
	return res, nil
}

// Follow returns the child of question node id reached by the given answer.
func (r *Resolver) Follow(id int, yes bool) (int, error) {
	res, err := r.Resolve(id)
	if err != nil {
		return 0, err
	}
	if res.IsGuess() {
		return 0, errors.NewValidationError("node_id", "node is a guess and has no answers", id)
	}
	return res.Question.Child(yes), nil
}

// warmThreshold is the node count below which Warm resolves on one goroutine.
const warmThreshold = 256

// Warm resolves the lowest node ids into the cache, as many as it holds, and
// returns how many it resolved. Without a cache it does nothing.
func (r *Resolver) Warm(ctx context.Context) (int, error) {
	if r.cache == nil {
		return 0, nil
	}
	n := min(r.cacheSize, r.tree.NodeCount())
	err := parallel.ParallelizeWithThreshold(ctx, n, warmThreshold, func(ctx context.Context, start, end int) error {
		for id := start; id < end; id++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := r.Resolve(id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "warm resolver cache")
	}
	r.logger.Debug("resolver cache warmed", log.TreeNodesKey, n)
	return n, nil
}
