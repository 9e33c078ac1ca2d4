package host

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/inkstone-labs/inklist/internal/config"
	"github.com/inkstone-labs/inklist/pkg/edit"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// Server answers gesture requests for the documents an editor has open.
type Server struct {
	documents *DocumentStore

	initialized bool

	// Engine configuration, swapped wholesale on reload.
	cfgMu       sync.RWMutex
	projectRoot string
	project     *config.ProjectConfig
	grammar     *list.Config

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// Shutdown state
	shutdown   bool
	shutdownMu sync.RWMutex
}

// NewServer creates a server reading framed messages from r and writing
// responses to w. A nil logger discards logs.
func NewServer(r io.Reader, w io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		documents: NewDocumentStore(),
		reader:    bufio.NewReader(r),
		writer:    w,
		logger:    logger,
	}
	_ = s.setProject(config.Default())
	return s
}

// SetProjectRoot points the server at a project before the client's
// initialize request arrives. A non-empty rootUri in initialize overrides
// it.
func (s *Server) SetProjectRoot(root string) {
	s.cfgMu.Lock()
	s.projectRoot = root
	s.cfgMu.Unlock()

	if err := s.loadProject(root); err != nil {
		s.logger.Warn("failed to load project config", "root", root, "error", err)
	}
}

// ProjectRoot returns the directory the server resolves config against.
func (s *Server) ProjectRoot() string {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.projectRoot
}

// loadProject loads the project config under root and installs it. A
// missing config file installs the defaults.
func (s *Server) loadProject(root string) error {
	proj, err := config.LoadFromDir(root)
	if err != nil {
		return err
	}
	if proj == nil {
		proj = config.Default()
	}
	return s.setProject(proj)
}

// setProject compiles the grammar from a resolved config and swaps both in
// under lock.
func (s *Server) setProject(proj *config.ProjectConfig) error {
	grammar, err := proj.ListConfig()
	if err != nil {
		return err
	}

	s.cfgMu.Lock()
	s.project = proj
	s.grammar = grammar
	s.cfgMu.Unlock()
	return nil
}

// snapshot returns the current grammar and project config.
func (s *Server) snapshot() (*list.Config, *config.ProjectConfig) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.grammar, s.project
}

// Run starts the server's main loop, processing JSON-RPC messages until
// the client exits or the input stream closes.
func (s *Server) Run() error {
	s.logger.Info("gesture server starting")

	for {
		s.shutdownMu.RLock()
		if s.shutdown {
			s.shutdownMu.RUnlock()
			return nil
		}
		s.shutdownMu.RUnlock()

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads one Content-Length framed message from the input.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if rpcErr != nil {
		msg.Error = rpcErr
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes one framed message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "listEdit/gesture":
		return s.handleGesture(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    -32601,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: -32602, Message: err.Error()})
		return err
	}

	if root := URIToPath(params.RootURI); root != "" {
		s.cfgMu.Lock()
		s.projectRoot = root
		s.cfgMu.Unlock()

		if err := s.loadProject(root); err != nil {
			s.logger.Warn("failed to load project config", "root", root, "error", err)
		}
	}

	grammar, _ := s.snapshot()
	s.logger.Info("project root", "path", s.ProjectRoot(), "markers", grammar.Markers())

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			ListEditProvider: true,
		},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.initialized = true
	s.logger.Info("server initialized")

	if config.FindConfigFile(s.ProjectRoot()) == "" {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeInfo,
			Message: "inklist: no inklist.yaml found, gestures use the default markers",
		})
	}

	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.logger.Info("shutdown requested")
	s.sendResponse(msg.ID, nil, nil)
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.logger.Info("server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	doc := params.TextDocument
	s.documents.Open(doc.URI, doc.LanguageID, doc.Text, doc.Version)
	s.logger.Info("opened", "uri", doc.URI, "language", doc.LanguageID)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Full sync, so only the last change matters.
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, last.Text, params.TextDocument.Version)
	}
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Info("closed", "uri", params.TextDocument.URI)
	return nil
}

// --- Gesture handler ---

func (s *Server) handleGesture(msg *JSONRPCMessage) error {
	var params GestureParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: -32602, Message: err.Error()})
		return err
	}

	g, ok := edit.ParseGesture(params.Gesture)
	if !ok {
		s.sendResponse(msg.ID, nil, &JSONRPCError{
			Code:    -32602,
			Message: "unknown gesture: " + params.Gesture,
		})
		return nil
	}

	doc, ok := s.documents.Get(params.URI)
	if !ok {
		s.sendResponse(msg.ID, nil, &JSONRPCError{
			Code:    -32602,
			Message: "document not open: " + params.URI,
		})
		return nil
	}

	grammar, proj := s.snapshot()

	// Documents outside the activation list defer to the editor's default.
	if !proj.ActiveFor(doc.LanguageID) {
		s.sendResponse(msg.ID, edit.Directive{Passthrough: true}, nil)
		return nil
	}

	text, ok := doc.Content.Line(params.Line)
	if !ok {
		s.sendResponse(msg.ID, nil, &JSONRPCError{
			Code:    -32602,
			Message: fmt.Sprintf("line %d out of range (document has %d lines)", params.Line, doc.Content.Len()),
		})
		return nil
	}

	unit := params.IndentUnit
	if unit == "" {
		unit = proj.IndentUnit()
	}

	engine := edit.NewEngine(grammar, edit.NewSiblingScanner(grammar, doc.Content))
	directive := engine.Apply(g, text, params.Line, unit)

	s.logger.Debug("gesture",
		"uri", params.URI,
		"line", params.Line,
		"gesture", g.String(),
		"passthrough", directive.Passthrough,
	)
	s.sendResponse(msg.ID, directive, nil)
	return nil
}
