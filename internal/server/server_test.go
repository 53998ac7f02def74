package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/photo-edit-mcp/internal/editor"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(editor.New(editor.Options{}), Options{Version: "test"})
}

func TestNew(t *testing.T) {
	s := New(editor.New(editor.Options{}), Options{})
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cfg == nil || s.log == nil {
		t.Fatal("New() did not fill defaults")
	}
	if s.version != "dev" {
		t.Errorf("version: got %q, want dev", s.version)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Methods(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method    string
		wantNil   bool
		wantError int
	}{
		{"initialize", false, 0},
		{"notifications/initialized", true, 0},
		{"tools/list", false, 0},
		{"ping", false, 0},
		{"resources/list", false, -32601},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if tt.wantError == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantError != 0 && (resp.Error == nil || resp.Error.Code != tt.wantError) {
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantError)
			}
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "photo-edit-mcp" || info["version"] != "test" {
		t.Errorf("serverInfo: got %v", info)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 40, 30)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"image_load","arguments":{"path":"` + path + `"}}}`,
		`not json`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"image_undo"}}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	// initialize, load, parse error, undo
	if len(responses) != 4 {
		t.Fatalf("got %d responses, want 4", len(responses))
	}
	if responses[1].Error != nil {
		t.Errorf("load failed: %+v", responses[1].Error)
	}
	if responses[2].Error == nil || responses[2].Error.Code != -32700 {
		t.Errorf("bad line should produce a parse error, got %+v", responses[2])
	}
	if responses[3].Error != nil {
		t.Errorf("undo on empty history must not fail: %+v", responses[3].Error)
	}
	if s.Editor().Current() == nil {
		t.Error("image should be loaded after Serve")
	}
}

func TestErrorResponse(t *testing.T) {
	s := newTestServer(t)
	resp := s.errorResponse(7, -32000, "Tool execution failed", ToolError{Kind: "no_image", Detail: "no image loaded"})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"jsonrpc":"2.0","id":7,"error":{"code":-32000,"message":"Tool execution failed","data":{"kind":"no_image","detail":"no image loaded"}}}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}
