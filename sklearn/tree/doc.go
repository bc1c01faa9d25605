// Package tree holds a trained scikit-learn decision tree in memory.
//
// A tree arrives as an artifact exported from Python: the parallel arrays of
// sklearn's `clf.tree_` (feature, threshold, children_left, children_right, value)
// together with the feature names the model was trained on and its classes_.
// Once loaded a Tree is immutable and safe for concurrent use without locking.
//
// # Artifact
//
// JSON (or YAML with the same keys):
//
//	{
//	  "classes": ["Girl", "Boy"],
//	  "feature_names": ["is_male"],
//	  "n_features_in": 1,
//	  "tree": {
//	    "node_count": 3,
//	    "feature": [0, -2, -2],
//	    "threshold": [0.5, -2, -2],
//	    "children_left": [1, -1, -1],
//	    "children_right": [2, -1, -1],
//	    "value": [[5, 5], [5, 0], [0, 5]]
//	  }
//	}
//
// Exporting from Python:
//
//	t = clf.tree_
//	json.dump({
//	    "classes": clf.classes_.tolist(),
//	    "feature_names": list(feature_names),
//	    "n_features_in": clf.n_features_in_,
//	    "tree": {
//	        "node_count": t.node_count,
//	        "feature": t.feature.tolist(),
//	        "threshold": t.threshold.tolist(),
//	        "children_left": t.children_left.tolist(),
//	        "children_right": t.children_right.tolist(),
//	        "value": t.value.reshape(t.node_count, -1).tolist(),
//	    },
//	}, f)
//
// # Usage
//
//	t, err := tree.Load("model.json")
//	if err != nil {
//	    log.Fatal(err) // *errors.LoadError
//	}
//	for p := range t.FindPaths("Kakashi HATAKE") {
//	    fmt.Println(p)
//	}
package tree
