package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/intent"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState       CommandType = "GET_STATE"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandOpen           CommandType = "OPEN"
	CommandClose          CommandType = "CLOSE"
	CommandMinimize       CommandType = "MINIMIZE"
	CommandRestore        CommandType = "RESTORE"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
	CommandToggle         CommandType = "TOGGLE"
	CommandFocus          CommandType = "FOCUS"
	CommandStartDrag      CommandType = "START_DRAG"
	CommandStartResize    CommandType = "START_RESIZE"
	CommandPointerMove    CommandType = "POINTER_MOVE"
	CommandPointerUp      CommandType = "POINTER_UP"
	CommandSetViewport    CommandType = "SET_VIEWPORT"
)

// intentCommands maps the commands that carry an intent to its kind.
var intentCommands = map[CommandType]intent.Kind{
	CommandOpen:           intent.Open,
	CommandClose:          intent.Close,
	CommandMinimize:       intent.Minimize,
	CommandRestore:        intent.Restore,
	CommandToggleMaximize: intent.ToggleMaximize,
	CommandToggle:         intent.Toggle,
	CommandFocus:          intent.Focus,
	CommandStartDrag:      intent.StartDrag,
	CommandStartResize:    intent.StartResize,
	CommandPointerMove:    intent.PointerMove,
	CommandPointerUp:      intent.PointerUp,
}

// IntentKind returns the intent a command carries.
func (c CommandType) IntentKind() (intent.Kind, bool) {
	k, ok := intentCommands[c]
	return k, ok
}

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	UptimeSeconds int64     `json:"uptime_seconds"`
	DaemonRunning bool      `json:"daemon_running"`
	WindowCount   int       `json:"window_count"`
	OpenCount     int       `json:"open_count"`
	Focused       wm.ID     `json:"focused,omitempty"`
	Viewport      geom.Size `json:"viewport"`
}

// WindowPayload names the target of a lifecycle command.
type WindowPayload struct {
	ID wm.ID `json:"id"`
}

// PointerPayload carries a pointer event. ID is required for presses.
type PointerPayload struct {
	ID     wm.ID  `json:"id,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Button string `json:"button,omitempty"`
}

// ViewportPayload represents the payload for SET_VIEWPORT
type ViewportPayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func uptimeSeconds(d time.Duration) int64 {
	return int64(d.Seconds())
}
