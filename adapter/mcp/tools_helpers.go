package mcp

import (
	"encoding/json"

	"github.com/felixgeelhaar/mcp-go"
)

const jsonMimeType = "application/json"

// jsonResource renders v as an indented JSON resource body.
func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: jsonMimeType,
		Text:     string(data),
	}, nil
}
