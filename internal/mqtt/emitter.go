package mqtt

import (
	"context"
	"encoding/json"
)

// StatusEmitter publishes device status changes to
// <prefix>/status/<id>/<key>.
type StatusEmitter struct {
	client *Client
}

func NewStatusEmitter(mc *Client) *StatusEmitter {
	return &StatusEmitter{client: mc}
}

func (e *StatusEmitter) EmitStatus(ctx context.Context, id string, statusKey string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return e.client.Publish("status/"+id+"/"+statusKey, payload)
}
