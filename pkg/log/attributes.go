// Standard attribute keys for treeguess log records. Keys are dotted so that log
// pipelines can group them ("tree.*", "http.*").

package log

// Component and operation context.
const (
	// ComponentKey identifies the package emitting the record.
	// Examples: "server", "game", "config"
	ComponentKey = "component"

	// OperationKey names the operation in progress.
	// Examples: "load", "resolve", "find_paths"
	OperationKey = "operation"
)

// Tree context.
const (
	// ArtifactPathKey is the path of the tree artifact being loaded.
	ArtifactPathKey = "tree.artifact"

	TreeNodesKey    = "tree.nodes"
	TreeClassesKey  = "tree.classes"
	TreeFeaturesKey = "tree.features"
	TreeDepthKey    = "tree.depth"

	// NodeIDKey is the node a request resolved.
	NodeIDKey = "tree.node_id"

	// NodeKindKey is "question" or "guess".
	NodeKindKey = "tree.node_kind"

	LabelKey = "tree.label"
)

// HTTP context.
const (
	RequestIDKey  = "http.request_id"
	MethodKey     = "http.method"
	PathKey       = "http.path"
	StatusKey     = "http.status"
	ClientIPKey   = "http.client_ip"
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorKey carries the error of a record.
	ErrorKey = "error"

	// StacktraceKey carries the stack extracted from cockroachdb/errors details.
	StacktraceKey = "stacktrace"
)
