// Package server exposes a photo editor over the MCP (Model Context Protocol).
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: one JSON-RPC request per line on stdin
//   - Output: one JSON-RPC response per line on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Tools
//
// Files and state:
//   - image_load, image_save: open and write files
//   - image_info: dimensions, undo depth and slider values
//   - image_preview: PNG preview of the current image
//   - image_undo, image_reset: step back, or reload the original
//
// Discrete operations, each one undo step:
//   - image_resize, image_rotate, image_flip
//   - image_grayscale, image_blur, image_sharpen
//
// Adjustments (brightness, contrast, color):
//   - image_adjust_preview: show a slider value without committing
//   - image_adjust_commit: apply it
//   - image_adjust_cancel: discard it
//
// Inspection:
//   - image_sample_color: color of one pixel
//
// Every tool that changes the image returns a StateResult with a base64 PNG
// preview.
//
// # Arguments
//
// Scalar arguments may be sent as JSON numbers or strings. Both are parsed
// by the editor, so "abc" for a width fails the same way a GUI text field
// would.
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000. The data field is a
// ToolError whose kind is one of no_image, no_source, decode, encode,
// invalid_parameter, operation, internal or unknown_tool. An empty undo
// stack is not an error; image_undo returns a message instead.
//
// # Concurrency
//
// Requests are handled one at a time in arrival order. Call is shared with
// the HTTP transport, which serializes its requests with a mutex.
package server
