// Package treeguess plays twenty questions with a decision tree trained in
// scikit-learn.
//
// A classifier exported from Python becomes a question graph: every internal
// node turns into a yes/no question phrased from its feature name and
// threshold, and every leaf into a guess of the majority class. The graph is
// served over HTTP for a browser frontend, or played directly in a terminal.
//
// # Quick Start
//
// Export a fitted DecisionTreeClassifier (see package sklearn/tree for the
// snippet), then:
//
//	treeguess play  --model characters.json
//	treeguess serve --model characters.json
//
// Or from Go:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/treeguess/game"
//	    "github.com/YuminosukeSato/treeguess/sklearn/tree"
//	)
//
//	func main() {
//	    t, err := tree.Load("characters.json")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    r, err := game.NewResolver(t)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    res, _ := r.Start()
//	    fmt.Println(res.Question.Text) // Is the character male?
//	}
//
// # Packages
//
//   - sklearn/tree: Loading, validating and walking exported trees
//   - question: Turning feature names and thresholds into questions
//   - game: Resolving node ids into questions or guesses, with caching
//   - server: The HTTP API, metrics and static frontend
//   - config: File, environment and flag configuration with hot reload
//   - metrics: Classification metrics over the training votes in the leaves
//   - report: Tree summaries and question-count histograms
//   - core/parallel: Parallel processing utilities
//   - pkg/errors, pkg/log: Error types and structured logging
//
// # HTTP API
//
//	GET /start                          root question
//	GET /question/:id                   question or guess at a node
//	GET /question/:id/answer/:answer    node reached by a yes/no answer
//	GET /healthz                        liveness
//	GET /metrics                        Prometheus metrics
//
// Node ids outside the tree answer 404 with the node count, so a client can
// recover from a stale link.
package treeguess
