package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"elevennote/internal/notes/config"
	"elevennote/pkg/logger"
)

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	address  string
	listener net.Listener
}

// New создает новый экземпляр gRPC сервера с цепочкой unary-перехватчиков.
func New(cfg *config.GRPCConfig, interceptors ...grpc.UnaryServerInterceptor) *Server {
	return &Server{
		server:  grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...)),
		address: cfg.GetAddress(),
	}
}

// RegisterService регистрирует gRPC сервисы.
func (s *Server) RegisterService(registerFunc func(grpc.ServiceRegistrar)) {
	registerFunc(s.server)
	reflection.Register(s.server)
}

// Start открывает TCP-слушатель и запускает сервер в фоне.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.Serve(ctx, listener)
	return nil
}

// Serve запускает сервер в фоне на готовом слушателе.
func (s *Server) Serve(ctx context.Context, listener net.Listener) {
	log := logger.Log(ctx)
	s.listener = listener

	log.Info(ctx, "gRPC server started", zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()
}

// Stop останавливает gRPC сервер, дожидаясь активных запросов.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, "stopping gRPC server")

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("gRPC graceful stop: %w", ctx.Err())
	}
}
