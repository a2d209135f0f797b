package ledgerv1

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

const (
	codecNameJSON        = "json"
	codecNameJSONCharset = "json; charset=utf-8"
)

// JSONCodec marshals ledger messages as plain JSON for the Connect protocol.
// Messages are ordinary Go structs, so connect's protobuf codecs cannot be used.
type JSONCodec struct {
	name string
}

var _ connect.Codec = (*JSONCodec)(nil)

// NewJSONCodec returns the codec registered for "application/json".
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{name: codecNameJSON}
}

// Name implements connect.Codec.
func (c *JSONCodec) Name() string {
	if c.name == "" {
		return codecNameJSON
	}
	return c.name
}

// Marshal implements connect.Codec.
func (c *JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty payload leaves msg untouched.
func (c *JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal into %T: %w", msg, err)
	}
	return nil
}

// HandlerCodecs returns the options that replace connect's protobuf JSON
// codecs on a handler, covering both JSON content types browsers send.
func HandlerCodecs() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(NewJSONCodec()),
		connect.WithCodec(&JSONCodec{name: codecNameJSONCharset}),
	}
}

// ClientCodec returns the option that makes a client speak JSON.
func ClientCodec() connect.ClientOption {
	return connect.WithCodec(NewJSONCodec())
}
