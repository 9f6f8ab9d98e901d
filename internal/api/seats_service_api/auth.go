package seats_service_api

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// SessionLookup resolves a session token to a username.
type SessionLookup interface {
	Lookup(token string) (string, bool)
}

// RequireSession rejects calls to the given methods unless the "authorization"
// metadata carries a live "Bearer <token>" session. Other methods pass through.
func RequireSession(sessions SessionLookup, methods ...string) grpc.UnaryServerInterceptor {
	protected := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		protected[FullMethod(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := protected[info.FullMethod]; !ok {
			return handler(ctx, req)
		}
		token := sessionToken(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "login required")
		}
		if _, ok := sessions.Lookup(token); !ok {
			return nil, status.Error(codes.Unauthenticated, "login required")
		}
		return handler(ctx, req)
	}
}

func sessionToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	const prefix = "bearer "
	for _, v := range md.Get("authorization") {
		if len(v) > len(prefix) && strings.EqualFold(v[:len(prefix)], prefix) {
			return strings.TrimSpace(v[len(prefix):])
		}
	}
	return ""
}
