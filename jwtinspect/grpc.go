package jwtinspect

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// enforces token authentication on every call
func UnaryServerInterceptor(cfg *Config) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()

		requestID := uuid.New().String()

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			logAuthFailure(cfg, requestID, "", NewValidationError(ErrMissingToken, "metadata not found", nil), time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, "metadata not found")
		}

		token, err := extractTokenFromMetadata(md)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, getErrorCode(err))
		}

		claims, err := cfg.Validate(token)
		if err != nil {
			logAuthFailure(cfg, requestID, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, getErrorCode(err))
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithRequestID(ctx, requestID)

		logAuthSuccess(cfg, requestID, claims, token, time.Since(startTime))

		return handler(ctx, req)
	}
}
