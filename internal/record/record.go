// Package record defines the tagged message variant decoded from session
// log lines and the text extraction rules the query evaluator operates on.
package record

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Kind identifies which of the four message variants a Message holds.
type Kind string

const (
	KindUser      Kind = "user"
	KindAssistant Kind = "assistant"
	KindSystem    Kind = "system"
	KindSummary   Kind = "summary"
)

// Message is the tagged variant over the four record kinds. Fields not
// applicable to a given Kind are left zero. UUID is absent for Summary.
type Message struct {
	Kind      Kind
	UUID      string
	SessionID string
	Timestamp string // RFC 3339, lexicographically sortable; empty for Summary

	ParentUUID  string
	CWD         string
	Version     string
	GitBranch   string
	UserType    string
	IsSidechain bool

	// User/Assistant only.
	Content json.RawMessage
	Model   string
	Usage   *Usage

	// System only.
	SystemContent string
	Level         string

	// Summary only.
	Summary string
	LeafUUID string

	// Raw holds the original decoded line, populated only when the caller
	// asked for it, so memory isn't spent retaining raw bytes nobody wants.
	Raw json.RawMessage
}

// Usage tracks token counters carried on assistant messages.
type Usage struct {
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
}

// ContentBlock is one element of a User/Assistant block-sequence content.
// Type is one of "text", "tool_use", "tool_result", "thinking", "image".
type ContentBlock struct {
	Type string

	// text
	Text string

	// thinking
	Thought string

	// tool_use
	ToolName  string
	ToolInput json.RawMessage

	// tool_result
	ToolUseID      string
	ResultText     string          // set when result content is a plain string
	ResultBlocks   []ContentBlock  // set when result content is a nested block sequence
	ResultIsString bool
	IsError        bool

	// image
	MediaType string
	DataRef   string
}

// RoleTag returns the record's role string, matched case-insensitively
// against filter.Options.RoleFilter.
func (m *Message) RoleTag() string {
	return string(m.Kind)
}

// ExtractText extracts the searchable text for a record, by kind.
//
// User/Assistant with string content return the decoded string; it is a
// new string built from a copy of Content, not a view sharing Content's
// memory. User/Assistant with a block sequence concatenate
// block-derived strings with single spaces, in order. System returns its
// content string; Summary returns its summary string.
func (m *Message) ExtractText() string {
	switch m.Kind {
	case KindSystem:
		return m.SystemContent
	case KindSummary:
		return m.Summary
	case KindUser, KindAssistant:
		return extractBlockText(m.Content)
	default:
		return ""
	}
}

// extractBlockText decodes the polymorphic content field (plain string or
// an ordered array of content blocks) and returns the extracted text,
// walking the parsed result with gjson rather than an intermediate
// unmarshal struct.
func extractBlockText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	content := gjson.ParseBytes(raw)

	if content.Type == gjson.String {
		return content.Str
	}
	if !content.IsArray() {
		return ""
	}

	var parts []string
	totalLen := 0
	content.ForEach(func(_, block gjson.Result) bool {
		part := blockText(block)
		if part == "" {
			return true
		}
		parts = append(parts, part)
		totalLen += len(part) + 1
		return true
	})
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	var buf strings.Builder
	buf.Grow(totalLen)
	for i, p := range parts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(p)
	}
	return buf.String()
}

func blockText(block gjson.Result) string {
	switch block.Get("type").Str {
	case "text":
		return block.Get("text").Str
	case "thinking":
		return block.Get("thinking").Str
	case "tool_result":
		return toolResultText(block.Get("content"))
	case "tool_use":
		input := block.Get("input")
		if !input.Exists() {
			return block.Get("name").Str + " {}"
		}
		return block.Get("name").Str + " " + input.Raw
	case "image":
		return ""
	default:
		return ""
	}
}

// toolResultText extracts a tool_result block's contribution: a string
// result verbatim, or a recursive extraction over a nested block sequence.
func toolResultText(content gjson.Result) string {
	if !content.Exists() {
		return ""
	}
	if content.Type == gjson.String {
		return content.Str
	}
	return extractBlockText(json.RawMessage(content.Raw))
}

// ProjectPath is carried separately from the decoded message: it is
// derived from the source file's path via internal/pathenc, not from the
// record's own fields.
type ProjectPath = string

// HasTimestamp reports whether the record carries a comparable timestamp.
// Summaries never do.
func (m *Message) HasTimestamp() bool {
	return m.Kind != KindSummary && m.Timestamp != ""
}

// ParsedTimestamp parses Timestamp as RFC 3339, returning the zero time on
// failure (the filter and stats components only ever need lexicographic
// comparison of the raw string, but callers rendering results may want
// the parsed form).
func (m *Message) ParsedTimestamp() time.Time {
	t, _ := time.Parse(time.RFC3339, m.Timestamp)
	return t
}
