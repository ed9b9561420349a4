package rpc

import (
	"context"
	"errors"

	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "hashids.v1.Codec"

	encodeMethod = "/" + ServiceName + "/Encode"
	decodeMethod = "/" + ServiceName + "/Decode"
)

type EncodeRequest struct {
	Numbers []uint32 `json:"numbers"`
}

type EncodeResponse struct {
	Hash string `json:"hash"`
}

type DecodeRequest struct {
	Hash string `json:"hash"`
}

type DecodeResponse struct {
	Numbers []uint32 `json:"numbers"`
}

type CodecServer interface {
	Encode(context.Context, *EncodeRequest) (*EncodeResponse, error)
	Decode(context.Context, *DecodeRequest) (*DecodeResponse, error)
}

type codecServer struct {
	svc *service.CodecService
}

func NewCodecServer(svc *service.CodecService) CodecServer {
	return &codecServer{svc: svc}
}

func (s *codecServer) Encode(ctx context.Context, req *EncodeRequest) (*EncodeResponse, error) {
	hash, err := s.svc.Encode(req.Numbers)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &EncodeResponse{Hash: hash}, nil
}

func (s *codecServer) Decode(ctx context.Context, req *DecodeRequest) (*DecodeResponse, error) {
	numbers, err := s.svc.Decode(ctx, req.Hash)
	if errors.Is(err, hashids.ErrInvalidHash) {
		return nil, status.Errorf(codes.InvalidArgument, "invalid hash %q", req.Hash)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to decode: %v", err)
	}
	return &DecodeResponse{Numbers: numbers}, nil
}

func RegisterCodecServer(s grpc.ServiceRegistrar, srv CodecServer) {
	s.RegisterService(&codecServiceDesc, srv)
}

var codecServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CodecServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Encode", Handler: encodeHandler},
		{MethodName: "Decode", Handler: decodeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hashids/v1/codec",
}

func encodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EncodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CodecServer).Encode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: encodeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CodecServer).Encode(ctx, req.(*EncodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func decodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DecodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CodecServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: decodeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CodecServer).Decode(ctx, req.(*DecodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}
