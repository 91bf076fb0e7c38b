package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/gesture"
	"github.com/1broseidon/deskfolio/internal/runtimepath"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) send(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetState retrieves the full window-manager snapshot.
func (c *Client) GetState() (*desktop.Snapshot, error) {
	var snap desktop.Snapshot
	if err := c.send(CommandGetState, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.send(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Window sends a lifecycle command (OPEN, CLOSE, TOGGLE, ...) for id.
func (c *Client) Window(cmd CommandType, id wm.ID) (*desktop.Result, error) {
	var res desktop.Result
	if err := c.send(cmd, WindowPayload{ID: id}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Pointer sends a pointer command (START_DRAG, START_RESIZE, POINTER_MOVE,
// POINTER_UP).
func (c *Client) Pointer(cmd CommandType, id wm.ID, p geom.Point, button gesture.Button) (*desktop.Result, error) {
	var res desktop.Result
	payload := PointerPayload{ID: id, X: p.X, Y: p.Y, Button: button.String()}
	if err := c.send(cmd, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetViewport updates the daemon's clamp bounds.
func (c *Client) SetViewport(size geom.Size) error {
	return c.send(CommandSetViewport, ViewportPayload{Width: size.Width, Height: size.Height}, nil)
}

// Drag moves a window by replaying a title-bar drag from its current origin.
// The result honours the same clamping as a pointer drag.
func (c *Client) Drag(id wm.ID, to geom.Point) (*desktop.Result, error) {
	w, err := c.movable(id)
	if err != nil {
		return nil, err
	}
	if _, err := c.Pointer(CommandStartDrag, id, geom.Point{X: w.X, Y: w.Y}, gesture.ButtonPrimary); err != nil {
		return nil, err
	}
	return c.finishGesture(to)
}

// Resize sizes a window by replaying a resize-handle drag. The pointer starts
// at the current size so the delta equals the requested change.
func (c *Client) Resize(id wm.ID, size geom.Size) (*desktop.Result, error) {
	w, err := c.movable(id)
	if err != nil {
		return nil, err
	}
	if _, err := c.Pointer(CommandStartResize, id, geom.Point{X: w.Width, Y: w.Height}, gesture.ButtonPrimary); err != nil {
		return nil, err
	}
	return c.finishGesture(geom.Point{X: size.Width, Y: size.Height})
}

// movable returns id's window if a drag or resize can act on it.
func (c *Client) movable(id wm.ID) (wm.Window, error) {
	snap, err := c.GetState()
	if err != nil {
		return wm.Window{}, err
	}
	for _, w := range snap.Windows {
		if w.ID != id {
			continue
		}
		if !w.Visible() {
			return wm.Window{}, fmt.Errorf("window %q is not visible", id)
		}
		if w.Maximized {
			return wm.Window{}, fmt.Errorf("window %q is maximized", id)
		}
		return w, nil
	}
	return wm.Window{}, fmt.Errorf("%w: %q", wm.ErrUnknownWindow, id)
}

func (c *Client) finishGesture(to geom.Point) (*desktop.Result, error) {
	res, err := c.Pointer(CommandPointerMove, "", to, gesture.ButtonPrimary)
	if _, upErr := c.Pointer(CommandPointerUp, "", to, gesture.ButtonPrimary); err == nil && upErr != nil {
		err = upErr
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
