package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/pkg/log"
	"github.com/YuminosukeSato/treeguess/question"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

func stump(t *testing.T, classes []tree.Label, feature string, threshold float64, values [][]float64) *tree.Tree {
	t.Helper()
	tr, err := tree.New(tree.Artifact{
		Classes:      classes,
		FeatureNames: []string{feature},
		Tree: tree.Arrays{
			NodeCount:     3,
			Feature:       []int{0, tree.TreeUndefined, tree.TreeUndefined},
			Threshold:     []float64{threshold, -2, -2},
			ChildrenLeft:  []int{1, tree.TreeLeaf, tree.TreeLeaf},
			ChildrenRight: []int{2, tree.TreeLeaf, tree.TreeLeaf},
			Value:         values,
		},
	}, "inline")
	require.NoError(t, err)
	return tr
}

func isMaleTree(t *testing.T) *tree.Tree {
	return stump(t, []tree.Label{"Girl", "Boy"}, "is_male", 0.5, [][]float64{{5, 5}, {5, 0}, {0, 5}})
}

func charactersTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Load("../sklearn/tree/testdata/characters.json")
	require.NoError(t, err)
	return tr
}

func newResolver(t *testing.T, tr *tree.Tree, opts ...Option) *Resolver {
	t.Helper()
	opts = append([]Option{WithLogger(log.Nop())}, opts...)
	r, err := NewResolver(tr, opts...)
	require.NoError(t, err)
	return r
}

func TestResolver_EndToEnd(t *testing.T) {
	r := newResolver(t, isMaleTree(t))

	root, err := r.Start()
	require.NoError(t, err)
	require.False(t, root.IsGuess())
	require.NotNil(t, root.Question)
	assert.Equal(t, "Is the character male?", root.Question.Text)
	assert.Equal(t, 0, root.ID())
	assert.Equal(t, 1, root.Question.No)
	assert.Equal(t, 2, root.Question.Yes)

	girl, err := r.Resolve(1)
	require.NoError(t, err)
	require.True(t, girl.IsGuess())
	assert.Nil(t, girl.Question)
	assert.Equal(t, "Girl", girl.Guess.Label)

	boy, err := r.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, "Boy", boy.Guess.Label)
	assert.Equal(t, 1.0, boy.Guess.Confidence)
}

func TestResolver_LeafArgmax(t *testing.T) {
	tr := stump(t, []tree.Label{"A", "B", "C"}, "age", 12.5, [][]float64{{3, 7, 4}, {3, 7, 0}, {0, 0, 4}})
	r := newResolver(t, tr)

	res, err := r.Resolve(1)
	require.NoError(t, err)
	require.True(t, res.IsGuess())
	assert.Equal(t, "B", res.Guess.Label)
	assert.InDelta(t, 0.7, res.Guess.Confidence, 1e-12)
}

func TestResolver_NotFound(t *testing.T) {
	r := newResolver(t, isMaleTree(t))

	for _, id := range []int{-1, 3, 7, 1 << 30} {
		res, err := r.Resolve(id)
		require.Error(t, err, "id %d", id)
		assert.True(t, errors.IsNotFound(err))
		assert.Equal(t, -1, res.ID())

		var nf *errors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, 3, nf.NodeCount)
	}

	_, err := r.Resolve(7)
	assert.EqualError(t, err, "node_id 7 out of range (0..2)")
}

func TestResolver_ExactlyOneResultPerNode(t *testing.T) {
	tr := charactersTree(t)
	r := newResolver(t, tr)

	for id := 0; id < tr.NodeCount(); id++ {
		res, err := r.Resolve(id)
		require.NoError(t, err)
		assert.True(t, (res.Question == nil) != (res.Guess == nil), "node %d", id)
		assert.Equal(t, tr.IsLeaf(id), res.IsGuess(), "node %d", id)
		assert.Equal(t, id, res.ID())
	}
}

func TestResolver_BranchOrientation(t *testing.T) {
	tr := charactersTree(t)
	r := newResolver(t, tr)

	for id := 0; id < tr.NodeCount(); id++ {
		if tr.IsLeaf(id) {
			continue
		}
		n, err := tr.Node(id)
		require.NoError(t, err)
		res, err := r.Resolve(id)
		require.NoError(t, err)
		q := res.Question

		switch q.Kind {
		case question.Numeric:
			assert.Equal(t, n.Left, q.Yes, "numeric node %d: yes must be <=", id)
			assert.Equal(t, n.Right, q.No, "numeric node %d", id)
		default:
			assert.Equal(t, n.Right, q.Yes, "indicator node %d: yes must be the true branch", id)
			assert.Equal(t, n.Left, q.No, "indicator node %d", id)
		}
	}
}

func TestResolver_Questions(t *testing.T) {
	r := newResolver(t, charactersTree(t))

	want := map[int]string{
		0: "Is the character male?",
		1: "Is the character's eye color white?",
		4: "Does the character have mask?",
		5: "Is the character's age ≤ 16.5?",
	}
	for id, text := range want {
		res, err := r.Resolve(id)
		require.NoError(t, err)
		require.NotNil(t, res.Question, "node %d", id)
		assert.Equal(t, text, res.Question.Text, "node %d", id)
	}
}

func TestResolver_Idempotent(t *testing.T) {
	for _, size := range []int{0, 4} {
		r := newResolver(t, charactersTree(t), WithCacheSize(size))
		for id := 0; id < 9; id++ {
			first, err := r.Resolve(id)
			require.NoError(t, err)
			second, err := r.Resolve(id)
			require.NoError(t, err)
			assert.Equal(t, first, second, "cache size %d, node %d", size, id)
		}
	}
}

func TestResolver_CachedResultsAreIsolated(t *testing.T) {
	r := newResolver(t, isMaleTree(t), WithCacheSize(8))

	first, err := r.Resolve(0)
	require.NoError(t, err)
	first.Question.Text = "tampered"

	second, err := r.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, "Is the character male?", second.Question.Text)
}

func TestResolver_MultipleTrees(t *testing.T) {
	a := newResolver(t, isMaleTree(t))
	b := newResolver(t, charactersTree(t))

	ra, err := a.Resolve(2)
	require.NoError(t, err)
	rb, err := b.Resolve(2)
	require.NoError(t, err)

	assert.Equal(t, "Boy", ra.Guess.Label)
	assert.Equal(t, "Sakura HARUNO", rb.Guess.Label)
	assert.Same(t, a.Tree(), a.tree)
}

func TestResolver_Concurrent(t *testing.T) {
	tr := charactersTree(t)
	r := newResolver(t, tr, WithCacheSize(3))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := (i + w) % (tr.NodeCount() + 1) // includes one out-of-range id
				_, err := r.Resolve(id)
				if id < tr.NodeCount() && err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestResolver_Follow(t *testing.T) {
	r := newResolver(t, charactersTree(t))

	tests := []struct {
		name    string
		answers []bool
		want    string
	}{
		{"girl with white eyes", []bool{false, true}, "Hinata HYUGA"},
		{"girl", []bool{false, false}, "Sakura HARUNO"},
		{"masked boy", []bool{true, true}, "Kakashi HATAKE"},
		{"young boy", []bool{true, false, true}, "Naruto UZUMAKI"},
		{"older boy", []bool{true, false, false}, "Sasuke UCHIHA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Start()
			require.NoError(t, err)
			for _, yes := range tt.answers {
				require.False(t, res.IsGuess())
				next, err := r.Follow(res.ID(), yes)
				require.NoError(t, err)
				res, err = r.Resolve(next)
				require.NoError(t, err)
			}
			require.True(t, res.IsGuess())
			assert.Equal(t, tt.want, res.Guess.Label)
		})
	}

	_, err := r.Follow(8, true)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve), "following a leaf should be rejected")

	_, err = r.Follow(42, true)
	assert.True(t, errors.IsNotFound(err))
}

func TestNewResolver_Options(t *testing.T) {
	_, err := NewResolver(nil)
	assert.Error(t, err)

	_, err = NewResolver(isMaleTree(t), WithCacheSize(-1))
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	custom := question.NewClassifier(question.Matcher{
		Name:  "never",
		Match: func(string) (question.Split, bool) { return question.Split{}, false },
	})
	r := newResolver(t, isMaleTree(t), WithClassifier(custom))
	res, err := r.Start()
	require.NoError(t, err)
	assert.Equal(t, question.Boolean, res.Question.Kind)
	assert.Equal(t, "Is the character male?", res.Question.Text)
}

func TestResolver_LogsLookupFailures(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	r := newResolver(t, isMaleTree(t), WithLogger(logger))

	_, err := r.Resolve(9)
	require.Error(t, err)
	assert.True(t, logger.ContainsMessage("node lookup failed"))
	assert.True(t, logger.ContainsField(log.NodeIDKey, 9.0))
	assert.True(t, logger.ContainsField(log.ComponentKey, "game"))
}

func TestResolver_Warm(t *testing.T) {
	tr := charactersTree(t)

	r, err := NewResolver(tr, WithCacheSize(4))
	require.NoError(t, err)
	n, err := r.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n, "warming stops at the cache size")
	assert.Equal(t, 4, r.cache.Len())

	r, err = NewResolver(tr, WithCacheSize(64))
	require.NoError(t, err)
	n, err = r.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tr.NodeCount(), n)

	r, err = NewResolver(tr, WithCacheSize(0))
	require.NoError(t, err)
	n, err = r.Warm(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResolver_WarmCancelled(t *testing.T) {
	r, err := NewResolver(charactersTree(t), WithCacheSize(64))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Warm(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
