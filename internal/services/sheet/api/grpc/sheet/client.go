package sheet

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls SheetService over an existing connection.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a sheet client on conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Call invokes method with a request built from fields.
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("sheet client is not configured")
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCharacter creates a character and returns its id.
func (c *Client) CreateCharacter(ctx context.Context, name string) (string, error) {
	out, err := c.Call(ctx, MethodCreateCharacter, map[string]any{"name": name})
	if err != nil {
		return "", err
	}
	return out.GetFields()["character"].GetStructValue().GetFields()["id"].GetStringValue(), nil
}

// Roll rolls a free pool for a character and returns the roll message.
func (c *Client) Roll(ctx context.Context, characterID string, dice int, kw string, seed *int64) (*structpb.Struct, error) {
	fields := map[string]any{
		"character_id": characterID,
		"dice":         dice,
		"keyword":      kw,
	}
	if seed != nil {
		fields["seed"] = fmt.Sprint(*seed)
	}
	out, err := c.Call(ctx, MethodRoll, fields)
	if err != nil {
		return nil, err
	}
	return out.GetFields()["roll"].GetStructValue(), nil
}
