package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// emit writes one record. A leading error field becomes the record's error and
// contributes a stacktrace attribute.
func (l *ZerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok && len(fields)%2 == 1 {
			e = withError(e, err)
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		e = e.Fields(normalizeFields(fields))
	}
	e.Msg(msg)
}

func withError(e *zerolog.Event, err error) *zerolog.Event {
	e = e.Err(err)
	if st := extractStacktrace(err); st != "" {
		e = e.Str(StacktraceKey, st)
	}
	if obj, ok := unwrapMarshaler(err); ok {
		e = e.Object("error_detail", obj)
	}
	return e
}

// normalizeFields turns key/value pairs into the slice form zerolog expects. Keys
// are stringified; error values are rendered with their message and, for the
// ErrorKey field, their stack.
func normalizeFields(fields []any) []any {
	out := make([]any, 0, len(fields)+2)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		if i+1 >= len(fields) {
			out = append(out, "!BADKEY", key)
			break
		}
		value := fields[i+1]
		if err, ok := value.(error); ok {
			out = append(out, key, err.Error())
			if key == ErrorKey {
				if st := extractStacktrace(err); st != "" {
					out = append(out, StacktraceKey, st)
				}
			}
			continue
		}
		out = append(out, key, value)
	}
	return out
}

// unwrapMarshaler finds the first error in the chain that can describe itself to zerolog.
func unwrapMarshaler(err error) (zerolog.LogObjectMarshaler, bool) {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if m, ok := e.(zerolog.LogObjectMarshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
