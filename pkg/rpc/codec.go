// Package rpc carries plain Go structs over Connect.
//
// Connect's built-in codecs only accept protobuf messages. The planner's
// messages are ordinary structs with json tags, so handlers and clients
// install JSONCodec in place of the default "json" codec:
//
//	h := connect.NewUnaryHandler(procedure, fn, rpc.WithJSON())
//	client := connect.NewClient[Req, Res](http.DefaultClient, url, rpc.WithJSON())
package rpc

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// JSONCodec marshals messages with encoding/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name registers the codec under the "json" content subtype.
func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	// Connect sends an empty body for an empty message.
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithJSON configures a handler or client to use JSONCodec.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}
