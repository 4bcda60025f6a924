// Package obs holds the request-scoped observability helpers shared by the
// HTTP layer and the slower adapters (database reads, forecast calls).
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey is the context key under which the request middleware stores
// the generated request id.
const RequestIDKey ctxKey = "req_id"

// Time returns a deferred hook that logs the operation duration, tagged with
// the request id when present. Pass the address of the named error return so
// failures are recorded on the same line:
//
//	defer obs.Time(ctx, "attractions.repo.ListAttractions")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur, *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur)
	}
}
