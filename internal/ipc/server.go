package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/runtimepath"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	desk         *desktop.Desktop
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default socket path.
func NewServer(desk *desktop.Desktop) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, desk), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, desk *desktop.Desktop) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		desk:       desk,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetState:
		return s.handleGetState()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSetViewport:
		return s.handleSetViewport(req.Payload)
	}
	if kind, ok := req.Command.IntentKind(); ok {
		return s.handleIntent(kind, req.Payload)
	}
	return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
}

func (s *Server) handleGetState() *Response {
	resp, err := NewOKResponse(s.desk.Snapshot())
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	snap := s.desk.Snapshot()
	open := 0
	for _, w := range snap.Windows {
		if w.Open {
			open++
		}
	}
	status := StatusData{
		UptimeSeconds: uptimeSeconds(s.desk.Uptime()),
		DaemonRunning: true,
		WindowCount:   len(snap.Windows),
		OpenCount:     open,
		Focused:       snap.Focused,
		Viewport:      snap.Viewport,
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleSetViewport(payload json.RawMessage) *Response {
	var req ViewportPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid viewport payload: %v", err))
	}
	if err := s.desk.SetViewport(geom.Size{Width: req.Width, Height: req.Height}); err != nil {
		return NewErrorResponse(err.Error())
	}
	log.Printf("IPC: viewport set to %dx%d", req.Width, req.Height)
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleIntent(kind intent.Kind, payload json.RawMessage) *Response {
	in, err := decodeIntent(kind, payload)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	res, err := s.desk.Apply(in)
	if err != nil {
		if errors.Is(err, wm.ErrUnknownWindow) {
			return NewErrorResponse(fmt.Sprintf("Unknown window: %s", in.Target))
		}
		return NewErrorResponse(fmt.Sprintf("Failed to apply %s: %v", kind, err))
	}
	resp, err := NewOKResponse(res)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// decodeIntent builds the intent a command payload describes.
func decodeIntent(kind intent.Kind, payload json.RawMessage) (intent.Intent, error) {
	switch kind {
	case intent.StartDrag, intent.StartResize, intent.PointerMove, intent.PointerUp:
		var p PointerPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				return intent.Intent{}, fmt.Errorf("Invalid pointer payload: %v", err)
			}
		}
		button, err := gesture.ParseButton(p.Button)
		if err != nil {
			return intent.Intent{}, err
		}
		if kind.Targeted() && p.ID == "" {
			return intent.Intent{}, fmt.Errorf("id is required")
		}
		return intent.Intent{
			Kind:   kind,
			Target: p.ID,
			Point:  geom.Point{X: p.X, Y: p.Y},
			Button: button,
		}, nil
	default:
		var p WindowPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return intent.Intent{}, fmt.Errorf("Invalid window payload: %v", err)
		}
		if p.ID == "" {
			return intent.Intent{}, fmt.Errorf("id is required")
		}
		return intent.For(kind, p.ID), nil
	}
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
