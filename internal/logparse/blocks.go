package logparse

import (
	"encoding/json"
	"strings"
)

type blockKind int

const (
	blockUnknown blockKind = iota
	blockText
	blockToolUse
	blockToolResult
)

// contentBlock is the tagged decoding of one element of a message content
// array. Unknown block types decode to blockUnknown and contribute nothing.
type contentBlock struct {
	kind    blockKind
	text    string
	toolUse ToolUse
}

// parseContentBlocks accepts both content shapes that appear in the logs:
// a plain string, or an array of typed blocks.
func parseContentBlocks(raw json.RawMessage) []contentBlock {
	if len(raw) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return []contentBlock{{kind: blockText, text: asString}}
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err != nil {
		return nil
	}
	blocks := make([]contentBlock, 0, len(asArray))
	for _, item := range asArray {
		blocks = append(blocks, parseBlock(item))
	}
	return blocks
}

func parseBlock(raw json.RawMessage) contentBlock {
	var head struct {
		Type  string          `json:"type"`
		Text  string          `json:"text"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return contentBlock{kind: blockUnknown}
	}
	switch head.Type {
	case "text":
		return contentBlock{kind: blockText, text: head.Text}
	case "tool_use":
		return contentBlock{kind: blockToolUse, toolUse: ToolUse{Name: head.Name, Input: head.Input}}
	case "tool_result":
		return contentBlock{kind: blockToolResult}
	default:
		return contentBlock{kind: blockUnknown}
	}
}

// joinText concatenates text blocks only; tool blocks never leak into the
// content string.
func joinText(blocks []contentBlock) string {
	var parts []string
	for _, b := range blocks {
		if b.kind != blockText {
			continue
		}
		if t := strings.TrimSpace(b.text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func collectToolUses(blocks []contentBlock) []ToolUse {
	var uses []ToolUse
	for _, b := range blocks {
		if b.kind == blockToolUse {
			uses = append(uses, b.toolUse)
		}
	}
	return uses
}
