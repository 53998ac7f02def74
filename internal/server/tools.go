package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

var adjustKind = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"brightness", "contrast", "color"},
	"description": "Which adjustment slider",
}

// ToolDefinitions returns all available tools
func ToolDefinitions() []Tool {
	return []Tool{
		// Files and state
		{
			Name:        "image_load",
			Description: "Open an image file for editing. Clears undo history and resets every slider. Supports JPEG, PNG, BMP, GIF and TIFF.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_save",
			Description: "Save the current image. The format follows the file extension (.jpg, .jpeg, .png, .bmp, .gif, .tif, .tiff). Parent directories are created.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Destination file path",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Report the editor state: dimensions, source file, undo depth and slider values.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_preview",
			Description: "Return a PNG preview of the current image, scaled down to fit the given box (never enlarged).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width. Default from configuration (820)",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview height. Default from configuration (640)",
					},
				},
			},
		},
		{
			Name:        "image_undo",
			Description: "Undo the most recent change. Reports a message instead of failing when there is nothing to undo.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_reset",
			Description: "Reload the original file from disk. The reset itself can be undone.",
			InputSchema: noArgs(),
		},

		// Discrete operations
		{
			Name:        "image_resize",
			Description: "Resize to exactly width x height pixels (aspect ratio is not preserved). Pass width and height, or size as \"W,H\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "New width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "New height in pixels",
					},
					"size": map[string]interface{}{
						"type":        "string",
						"description": "Width and height separated by a comma, e.g. \"800,600\"",
					},
				},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate clockwise by any angle in degrees. The canvas grows to fit; uncovered corners use the configured fill color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "Degrees clockwise; negative turns counter-clockwise",
					},
				},
				"required": []string{"angle"},
			},
		},
		{
			Name:        "image_flip",
			Description: "Mirror the image left-right (horizontal) or top-bottom (vertical).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"axis": map[string]interface{}{
						"type": "string",
						"enum": []string{"horizontal", "vertical"},
					},
				},
				"required": []string{"axis"},
			},
		},
		{
			Name:        "image_grayscale",
			Description: "Convert to grayscale.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_blur",
			Description: "Apply a soft 5x5 blur.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_sharpen",
			Description: "Apply a 3x3 sharpen filter.",
			InputSchema: noArgs(),
		},

		// Adjustments
		{
			Name:        "image_adjust_preview",
			Description: "Preview a brightness, contrast or color adjustment without committing it. Call repeatedly while a slider moves; the whole gesture costs one undo step. 1.0 is neutral.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": adjustKind,
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Adjustment factor; 1.0 leaves the image unchanged",
					},
				},
				"required": []string{"kind", "factor"},
			},
		},
		{
			Name:        "image_adjust_commit",
			Description: "Apply an adjustment to the image and return every slider to 1.0. Without a factor, the last previewed value is used. A quick boost is a commit with factor 1.2.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": adjustKind,
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Adjustment factor. Defaults to the slider's current value",
					},
				},
				"required": []string{"kind"},
			},
		},
		{
			Name:        "image_adjust_cancel",
			Description: "Discard an uncommitted adjustment preview and return its slider to 1.0.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": adjustKind,
				},
				"required": []string{"kind"},
			},
		},

		// Color
		{
			Name:        "image_sample_color",
			Description: "Get the color of one pixel of the current image as hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
	}
}
