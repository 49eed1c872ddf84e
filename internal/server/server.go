package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"scrooge-bank/internal/config"
	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/handler"
	"scrooge-bank/internal/repository"
	"scrooge-bank/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	// Initialize database connection
	db, err := sql.Open("postgres", cfg.GetDBConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("Successfully connected to database")
	}

	// Initialize store (Unit of Work)
	store := repository.NewStore(db, logger)

	if err := seed(store, cfg, logger); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize services
	userService := service.NewUserService(store, logger)
	accountService := service.NewAccountService(store, logger)
	transactionService := service.NewTransactionService(store, logger)
	transferService := service.NewTransferService(store, logger)
	bankService := service.NewBankService(store, logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	transferHandler := handler.NewTransferHandler(transferService)
	bankHandler := handler.NewBankHandler(bankService)

	// Setup router
	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "database unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	// Registration is the only unauthenticated route
	router.HandleFunc("/users", userHandler.Register).Methods("POST")

	// Everything below requires a bearer token
	authed := router.NewRoute().Subrouter()
	authed.Use(handler.AuthMiddleware(userService))
	authed.HandleFunc("/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/accounts/{id:[0-9]+}", accountHandler.GetAccount).Methods("GET")

	operator := authed.NewRoute().Subrouter()
	operator.Use(handler.RequireRole(domain.RoleOperator))
	operator.HandleFunc("/bank/capital", bankHandler.GetCapital).Methods("GET")

	customer := authed.NewRoute().Subrouter()
	customer.Use(handler.RequireRole(domain.RoleCustomer))
	customer.HandleFunc("/accounts", accountHandler.OpenAccount).Methods("POST")
	customer.HandleFunc("/account/close", accountHandler.CloseAccount).Methods("POST")
	customer.HandleFunc("/account/transactions", transactionHandler.History).Methods("GET")
	customer.HandleFunc("/account/deposit", transactionHandler.Deposit).Methods("POST")
	customer.HandleFunc("/account/withdraw", transactionHandler.Withdraw).Methods("POST")
	customer.HandleFunc("/account/transfer", transferHandler.Transfer).Methods("POST")

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}, nil
}

// seed ensures the bank-capital record and the operator user exist. Both
// writes are idempotent, so restarting the server never reseeds.
func seed(store *repository.Store, cfg *config.Config, logger *slog.Logger) error {
	seedCapital, err := decimal.NewFromString(cfg.BankSeedCapital)
	if err != nil {
		return err
	}
	if err := store.BankCapital().EnsureSeedCapital(seedCapital); err != nil {
		return err
	}

	operator, err := store.User().GetUserByEmail(cfg.BankOperatorEmail)
	if err != nil {
		return err
	}
	if operator != nil {
		return nil
	}

	token := cfg.BankOperatorToken
	if token == "" {
		token = uuid.New().String()
	}

	if err := store.User().CreateUser(&domain.User{
		Email: cfg.BankOperatorEmail,
		SSN:   "000000000",
		Role:  domain.RoleOperator,
		Token: token,
	}); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Operator user seeded", "email", cfg.BankOperatorEmail)
	}
	return nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.logger != nil {
		s.logger.Info("Starting server", "port", s.port)
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Error("Server failed to start", "error", err)
			}
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server. The listener drains first so
// requests still in flight keep a usable database pool; the pool closes
// only once no handler can touch it.
func (s *Server) Stop(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("Shutting down server")
	}

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}

	if s.db != nil {
		s.db.Close()
	}
	return err
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	// Tests pass port 0 and run silent; production logs JSON to stdout.
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
