package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hrplus/leavemgr/db"
	"github.com/hrplus/leavemgr/models"
	"github.com/hrplus/leavemgr/resolve"
	"github.com/hrplus/leavemgr/store"
)

// ToolHandler represents a function that handles a tool call
type ToolHandler func(params json.RawMessage) (any, error)

// Server handles MCP communication over stdio. It also carries the core
// logic (tool registry, store, resolver) that the HTTP transport delegates to.
type Server struct {
	config Config
	db     *gorm.DB

	store    *store.Store
	resolver *resolve.Resolver

	reader *bufio.Reader
	writer *bufio.Writer

	// Tool registry
	tools map[string]ToolHandler
	mu    sync.RWMutex

	// Session tracking
	session *models.Session

	log zerolog.Logger
}

// newLogger builds the server logger from the config.
func newLogger(config Config) zerolog.Logger {
	w := config.LogWriter
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "leavemgr").Logger()
}

// NewServer creates a new MCP server that communicates over stdio
func NewServer(config Config) (*Server, error) {
	logger := newLogger(config)

	server := &Server{
		config: config,
		reader: bufio.NewReader(os.Stdin),
		writer: bufio.NewWriter(os.Stdout),
		tools:  make(map[string]ToolHandler),
		log:    logger,
	}

	// Initialize database if URL provided
	if config.DatabaseURL != "" && config.DatabaseURL != "skip" {
		database, err := db.Connect(config.DatabaseURL, config.Debug)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		server.db = database
		server.store = store.New(database, logger)
		server.resolver = resolve.NewResolver(server.store, logger, resolve.Options{
			Threshold:  config.FuzzyThreshold,
			MaxMatches: config.MaxMatches,
		})

		// Create session for audit
		session := &models.Session{ID: generateSessionID()}
		if err := database.Create(session).Error; err != nil {
			logger.Debug().Err(err).Msg("failed to create session")
		} else {
			server.session = session
			logger.Debug().Str("session", session.ID).Msg("session created")
		}
	}

	// Register built-in tools
	server.registerBuiltinTools()

	return server, nil
}

// Start begins processing JSON-RPC requests from stdin
func (s *Server) Start() error {
	sessionID := ""
	if s.session != nil {
		sessionID = s.session.ID
	}
	s.log.Info().Str("session", sessionID).Msg("MCP server started on stdio")

	// Use JSON decoder for streaming - handles multi-line JSON properly
	decoder := json.NewDecoder(s.reader)

	for {
		var req Request
		err := decoder.Decode(&req)

		if err == io.EOF {
			s.log.Debug().Msg("EOF received, shutting down gracefully")
			return nil
		}

		if err != nil {
			if err == io.ErrUnexpectedEOF {
				s.log.Debug().Msg("unexpected EOF, waiting for more data")
				continue
			}

			errMsg := "Parse error"
			if syntaxErr, ok := err.(*json.SyntaxError); ok {
				errMsg = fmt.Sprintf("JSON syntax error at position %d: %v", syntaxErr.Offset, err)
			} else if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
				errMsg = fmt.Sprintf("JSON type error: expected %s for field %s", typeErr.Type, typeErr.Field)
			} else {
				errMsg = fmt.Sprintf("JSON decode error: %v", err)
			}

			// Send parse error but continue running
			s.log.Debug().Str("error", errMsg).Msg("request parse failed")
			s.sendResponse(ErrorResponse(nil, ParseError, errMsg))

			// Try to recover by creating a new decoder
			decoder = json.NewDecoder(s.reader)
			continue
		}

		s.log.Debug().Str("method", req.Method).Msg("request received")

		response := s.handleRequest(req)

		// Don't send response for notifications (no ID)
		if req.ID != nil {
			s.sendResponse(response)
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		return s.handleInitialized(req)
	case "ping":
		return s.handlePing(req)
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(req)
	case "prompts/list":
		return SuccessResponse(req.ID, map[string]any{
			"prompts": []any{},
		})
	case "resources/list":
		return SuccessResponse(req.ID, map[string]any{
			"resources": []any{},
		})
	default:
		return ErrorResponse(req.ID, MethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// sendResponse writes a response to stdout
func (s *Server) sendResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal response")
		return
	}

	fmt.Fprintf(s.writer, "%s\n", data)
	s.writer.Flush()
}

// RegisterTool adds a custom tool handler
func (s *Server) RegisterTool(name string, handler ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[name] = handler
}

// Close cleans up resources
func (s *Server) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
