package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mvillagran/securedocs/internal/database"
	"github.com/mvillagran/securedocs/internal/handlers"
	"github.com/mvillagran/securedocs/internal/mail"
	"github.com/mvillagran/securedocs/internal/repositories"
	"github.com/mvillagran/securedocs/internal/routes"
	"github.com/mvillagran/securedocs/internal/services"
)

// CapturingSender records every message handed to it instead of talking to
// a real provider.
type CapturingSender struct {
	mu       sync.Mutex
	Messages []mail.Message
}

func (s *CapturingSender) Send(ctx context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a snapshot of the captured messages.
func (s *CapturingSender) Sent() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mail.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// WaitForMessages polls until n messages have been captured or the timeout
// elapses. Delivery happens on a background worker, so tests cannot assert
// immediately after the HTTP response.
func (s *CapturingSender) WaitForMessages(n int, timeout time.Duration) []mail.Message {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if msgs := s.Sent(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(10 * time.Millisecond)
	}
	return s.Sent()
}

// TestServer wires the full HTTP stack against a test database, with mail
// delivery captured in memory.
type TestServer struct {
	Server     *httptest.Server
	Sender     *CapturingSender
	Dispatcher *mail.Dispatcher
	cancel     context.CancelFunc
}

// NewTestServer builds repositories, services, handlers and routes the same
// way cmd/api does, minus the SES sender and rate limiting timeouts.
func NewTestServer(db *TestDB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	dbWrapper := &database.DB{Pool: db.Pool}
	userRepo := repositories.NewUserRepository(dbWrapper)
	entryRepo := repositories.NewEntryRepository(dbWrapper)

	sender := &CapturingSender{}
	dispatcher := mail.NewDispatcher(sender, logger, 64, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go dispatcher.Start(ctx)

	userService := services.NewUserService(userRepo, logger)
	entryService := services.NewEntryService(entryRepo, logger)
	resetService := services.NewResetService(userRepo, dispatcher, logger, 4, 16)

	userHandler := handlers.NewUserHandler(userService)
	entryHandler := handlers.NewEntryHandler(entryService)
	resetHandler := handlers.NewResetHandler(resetService)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	routes.RegisterRoutes(router, userHandler, entryHandler, resetHandler)

	return &TestServer{
		Server:     httptest.NewServer(router),
		Sender:     sender,
		Dispatcher: dispatcher,
		cancel:     cancel,
	}
}

// Close shuts down the HTTP server and drains the mail worker.
func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Dispatcher.Stop()
	ts.cancel()
}
