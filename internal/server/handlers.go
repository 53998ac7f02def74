package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/editor"
	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
)

// ErrUnknownTool is returned by Call for a name not in ToolDefinitions.
var ErrUnknownTool = errors.New("unknown tool")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tool call.
type ToolError struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// StateResult is returned by every tool that changes the image. It carries
// the editor state and, when an image is loaded, a preview of it.
type StateResult struct {
	*editor.State
	Message string                 `json:"message,omitempty"`
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

// AdjustPreviewResult shows an uncommitted adjustment.
type AdjustPreviewResult struct {
	Kind         string                 `json:"kind"`
	Factor       float64                `json:"factor"`
	HistoryDepth int                    `json:"history_depth"`
	Preview      *imaging.PreviewResult `json:"preview"`
}

// SaveResult describes a written file.
type SaveResult struct {
	Path string             `json:"path"`
	File *imaging.ImageInfo `json:"file"`
}

// ErrorKind names err for transports: one of the editor's kinds, or
// "unknown_tool".
func ErrorKind(err error) string {
	if errors.Is(err, ErrUnknownTool) {
		return "unknown_tool"
	}
	return string(editor.KindOf(err))
}

// handleToolsCall wraps a tool result in MCP's content format:
//
//	{"content": [{"type": "text", "text": "<JSON result>"}]}
//
// Tool failures are JSON-RPC errors with code -32000 and a ToolError as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.Call(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{
			Kind:   ErrorKind(err),
			Detail: err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// Call runs the named tool. It is the single dispatch point shared by the
// MCP and HTTP transports, and it is not safe for concurrent use.
func (s *Server) Call(name string, args json.RawMessage) (interface{}, error) {
	start := time.Now()
	result, err := s.dispatch(name, args)

	entry := s.log.WithFields(logrus.Fields{
		"tool":     name,
		"duration": time.Since(start),
		"depth":    s.editor.Depth(),
	})
	if err != nil {
		entry.WithFields(logrus.Fields{
			"kind":  ErrorKind(err),
			"error": err,
		}).Warn("Tool failed")
		return nil, err
	}
	entry.Info("Tool call")
	return result, nil
}

func (s *Server) dispatch(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Files and state
	case "image_load":
		return s.handleLoad(args)
	case "image_save":
		return s.handleSave(args)
	case "image_info":
		return s.stateResult(false, "")
	case "image_preview":
		return s.handlePreview(args)
	case "image_undo":
		return s.handleUndo()
	case "image_reset":
		if err := s.editor.Reset(); err != nil {
			return nil, err
		}
		return s.stateResult(true, "")

	// Discrete operations
	case "image_resize":
		return s.handleResize(args)
	case "image_rotate":
		return s.handleRotate(args)
	case "image_flip":
		return s.handleFlip(args)
	case "image_grayscale":
		return s.mutate(s.editor.Grayscale())
	case "image_blur":
		return s.mutate(s.editor.Blur())
	case "image_sharpen":
		return s.mutate(s.editor.Sharpen())

	// Adjustments
	case "image_adjust_preview":
		return s.handleAdjustPreview(args)
	case "image_adjust_commit":
		return s.handleAdjustCommit(args)
	case "image_adjust_cancel":
		return s.handleAdjustCancel(args)

	case "image_sample_color":
		return s.handleSampleColor(args)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// param holds a scalar argument sent either as a JSON string or a number.
// Parsing is left to the editor so that both forms share one validation path.
type param string

func (p *param) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = param(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want a string or number, got %s", b)
	}
	*p = param(n.String())
	return nil
}

func (p param) String() string { return strings.TrimSpace(string(p)) }

func decodeArgs(args json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return &editor.InvalidParameterError{Name: "arguments", Reason: err.Error()}
	}
	return nil
}

func required(name string, p param) (string, error) {
	v := p.String()
	if v == "" {
		return "", &editor.InvalidParameterError{Name: name, Reason: "required"}
	}
	return v, nil
}

func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// stateResult reports the editor state, with a preview of the current image
// when withPreview is set and an image is loaded.
func (s *Server) stateResult(withPreview bool, message string) (*StateResult, error) {
	res := &StateResult{State: s.editor.State(), Message: message}
	if withPreview && s.editor.Current() != nil {
		p, err := imaging.Preview(s.editor.Current(), s.cfg.Preview.MaxWidth, s.cfg.Preview.MaxHeight)
		if err != nil {
			return nil, err
		}
		res.Preview = p
	}
	return res, nil
}

func (s *Server) mutate(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return s.stateResult(true, "")
}

// === Files and state ===

type pathArgs struct {
	Path param `json:"path"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	path, err := required("path", a.Path)
	if err != nil {
		return nil, err
	}
	if _, err := s.editor.Load(path); err != nil {
		return nil, err
	}
	return s.stateResult(true, "")
}

func (s *Server) handleSave(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	path, err := required("path", a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.editor.Save(path); err != nil {
		return nil, err
	}
	return &SaveResult{Path: path, File: imaging.Describe(s.editor.Current(), path)}, nil
}

type previewArgs struct {
	MaxWidth  param `json:"max_width"`
	MaxHeight param `json:"max_height"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.editor.Current() == nil {
		return nil, editor.ErrNoImage
	}

	w, h := s.cfg.Preview.MaxWidth, s.cfg.Preview.MaxHeight
	var err error
	if a.MaxWidth != "" {
		if w, err = editor.ParseDimension("max_width", a.MaxWidth.String()); err != nil {
			return nil, err
		}
	}
	if a.MaxHeight != "" {
		if h, err = editor.ParseDimension("max_height", a.MaxHeight.String()); err != nil {
			return nil, err
		}
	}
	return imaging.Preview(s.editor.Current(), w, h)
}

func (s *Server) handleUndo() (interface{}, error) {
	if !s.editor.Undo() {
		return s.stateResult(false, "No more states to undo.")
	}
	return s.stateResult(true, "")
}

// === Discrete operations ===

type resizeArgs struct {
	Width  param `json:"width"`
	Height param `json:"height"`

	// Size is the "W,H" text form; it wins over Width and Height.
	Size param `json:"size"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var w, h int
	var err error
	if a.Size != "" {
		w, h, err = editor.ParseDimensions(a.Size.String())
	} else if w, err = editor.ParseDimension("width", a.Width.String()); err == nil {
		h, err = editor.ParseDimension("height", a.Height.String())
	}
	if err != nil {
		return nil, err
	}
	return s.mutate(s.editor.Resize(w, h))
}

type rotateArgs struct {
	Angle param `json:"angle"`
}

func (s *Server) handleRotate(args json.RawMessage) (interface{}, error) {
	var a rotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	angle, err := editor.ParseAngle(a.Angle.String())
	if err != nil {
		return nil, err
	}
	return s.mutate(s.editor.Rotate(angle))
}

type flipArgs struct {
	Axis param `json:"axis"`
}

func (s *Server) handleFlip(args json.RawMessage) (interface{}, error) {
	var a flipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	axis, err := imaging.ParseAxis(a.Axis.String())
	if err != nil {
		return nil, &editor.InvalidParameterError{Name: "axis", Value: a.Axis.String(), Reason: "must be horizontal or vertical"}
	}
	return s.mutate(s.editor.Flip(axis))
}

// === Adjustments ===

type adjustArgs struct {
	Kind   param `json:"kind"`
	Factor param `json:"factor"`
}

// parseAdjust resolves kind and, if given, factor. The factor is checked
// against the configured slider range.
func (s *Server) parseAdjust(a adjustArgs) (imaging.Enhancement, float64, bool, error) {
	kind, err := imaging.ParseEnhancement(strings.ToLower(a.Kind.String()))
	if err != nil {
		return "", 0, false, &editor.InvalidParameterError{Name: "kind", Value: a.Kind.String(), Reason: "must be brightness, contrast or color"}
	}
	if a.Factor == "" {
		return kind, 0, false, nil
	}
	factor, err := editor.ParseFactor(a.Factor.String())
	if err != nil {
		return "", 0, false, err
	}
	if r := s.cfg.SliderRange(kind); !r.Contains(factor) {
		return "", 0, false, &editor.InvalidParameterError{
			Name:   "factor",
			Value:  a.Factor.String(),
			Reason: fmt.Sprintf("%s must be between %g and %g", kind, r.Min, r.Max),
		}
	}
	return kind, factor, true, nil
}

func (s *Server) handleAdjustPreview(args json.RawMessage) (interface{}, error) {
	var a adjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kind, factor, ok, err := s.parseAdjust(a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &editor.InvalidParameterError{Name: "factor", Reason: "required"}
	}

	img, err := s.editor.Preview(kind, factor)
	if err != nil {
		return nil, err
	}
	p, err := imaging.Preview(img, s.cfg.Preview.MaxWidth, s.cfg.Preview.MaxHeight)
	if err != nil {
		return nil, err
	}
	return &AdjustPreviewResult{
		Kind:         string(kind),
		Factor:       factor,
		HistoryDepth: s.editor.Depth(),
		Preview:      p,
	}, nil
}

func (s *Server) handleAdjustCommit(args json.RawMessage) (interface{}, error) {
	var a adjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kind, factor, ok, err := s.parseAdjust(a)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Apply with no slider value: use the last previewed factor.
		factor = s.editor.Session(kind).Factor()
	}
	return s.mutate(s.editor.Commit(kind, factor))
}

func (s *Server) handleAdjustCancel(args json.RawMessage) (interface{}, error) {
	var a adjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kind, _, _, err := s.parseAdjust(adjustArgs{Kind: a.Kind})
	if err != nil {
		return nil, err
	}
	if err := s.editor.Cancel(kind); err != nil {
		return nil, err
	}
	return s.stateResult(true, "")
}

// === Color ===

type sampleColorArgs struct {
	X param `json:"x"`
	Y param `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img := s.editor.Current()
	if img == nil {
		return nil, editor.ErrNoImage
	}
	x, err := parseCoord("x", a.X)
	if err != nil {
		return nil, err
	}
	y, err := parseCoord("y", a.Y)
	if err != nil {
		return nil, err
	}
	sample, err := imaging.SampleColor(img, x, y)
	if err != nil {
		return nil, &editor.InvalidParameterError{Name: "coordinates", Value: fmt.Sprintf("%d,%d", x, y), Reason: err.Error()}
	}
	return sample, nil
}

func parseCoord(name string, p param) (int, error) {
	n, err := strconv.Atoi(p.String())
	if err != nil || n < 0 {
		return 0, &editor.InvalidParameterError{Name: name, Value: p.String(), Reason: "must be a non-negative integer"}
	}
	return n, nil
}
