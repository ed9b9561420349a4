package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client struct {
	conn *grpc.ClientConn
}

func NewClient(address string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn}, nil
}

func (c *Client) Encode(ctx context.Context, numbers []uint32) (string, error) {
	out := new(EncodeResponse)
	if err := c.conn.Invoke(ctx, encodeMethod, &EncodeRequest{Numbers: numbers}, out); err != nil {
		return "", err
	}
	return out.Hash, nil
}

func (c *Client) Decode(ctx context.Context, hash string) ([]uint32, error) {
	out := new(DecodeResponse)
	if err := c.conn.Invoke(ctx, decodeMethod, &DecodeRequest{Hash: hash}, out); err != nil {
		return nil, err
	}
	return out.Numbers, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
