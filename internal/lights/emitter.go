package lights

import "context"

// StatusEmitter receives device state changes noticed during a
// refresh. The transport owning the connection decides where they go.
type StatusEmitter interface {
	EmitStatus(ctx context.Context, id string, statusKey string, data interface{}) error
}
