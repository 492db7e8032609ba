// Package decode turns one JSONL line from a session file into a
// record.Message, reading fields with tidwall/gjson rather than an
// intermediate unmarshal struct, the same way agentsview's claude session
// parser walks this schema line by line.
package decode

import (
	"sync"

	"github.com/tidwall/gjson"

	"github.com/marcus/ccsearch/internal/record"
)

// Decoder decodes JSONL lines into records. It is not safe for concurrent
// use by multiple goroutines; callers (file workers) hold one Decoder per
// worker goroutine.
type Decoder struct {
	keepRaw bool
}

// New creates a Decoder. When keepRaw is true, decoded messages retain
// their original line bytes in Message.Raw.
func New(keepRaw bool) *Decoder {
	return &Decoder{keepRaw: keepRaw}
}

// DecodeLine parses one line into a record.Message. ok is false when the
// line isn't valid JSON or carries an absent/unknown type field; callers
// treat that as a line to skip, never a fatal error.
func (d *Decoder) DecodeLine(line []byte) (record.Message, bool) {
	s := string(line)
	if !gjson.Valid(s) {
		return record.Message{}, false
	}
	root := gjson.Parse(s)

	var msg record.Message
	switch root.Get("type").Str {
	case "user":
		inner := root.Get("message")
		if !inner.Exists() || inner.Get("role").Str != "user" {
			return record.Message{}, false
		}
		msg = decodeChatMessage(record.KindUser, root, inner)
	case "assistant":
		inner := root.Get("message")
		if !inner.Exists() {
			return record.Message{}, false
		}
		msg = decodeChatMessage(record.KindAssistant, root, inner)
	case "system":
		msg = record.Message{
			Kind:          record.KindSystem,
			UUID:          root.Get("uuid").Str,
			SessionID:     root.Get("sessionId").Str,
			Timestamp:     root.Get("timestamp").Str,
			SystemContent: root.Get("content").Str,
			Level:         root.Get("level").Str,
		}
	case "summary":
		msg = record.Message{
			Kind:      record.KindSummary,
			SessionID: root.Get("sessionId").Str,
			Summary:   root.Get("summary").Str,
			LeafUUID:  root.Get("leafUuid").Str,
		}
	default:
		return record.Message{}, false
	}

	if d.keepRaw {
		cp := make([]byte, len(line))
		copy(cp, line)
		msg.Raw = cp
	}
	return msg, true
}

func decodeChatMessage(kind record.Kind, root, inner gjson.Result) record.Message {
	msg := record.Message{
		Kind:        kind,
		UUID:        root.Get("uuid").Str,
		SessionID:   root.Get("sessionId").Str,
		Timestamp:   root.Get("timestamp").Str,
		ParentUUID:  root.Get("parentUuid").Str,
		CWD:         root.Get("cwd").Str,
		Version:     root.Get("version").Str,
		GitBranch:   root.Get("gitBranch").Str,
		UserType:    root.Get("userType").Str,
		IsSidechain: root.Get("isSidechain").Bool(),
		Content:     []byte(inner.Get("content").Raw),
		Model:       inner.Get("model").Str,
	}

	if usage := inner.Get("usage"); usage.Exists() {
		msg.Usage = &record.Usage{
			InputTokens:              int(usage.Get("input_tokens").Int()),
			OutputTokens:             int(usage.Get("output_tokens").Int()),
			CacheCreationInputTokens: int(usage.Get("cache_creation_input_tokens").Int()),
			CacheReadInputTokens:     int(usage.Get("cache_read_input_tokens").Int()),
		}
	}
	return msg
}

// bufPool holds reusable line-scan buffers, one per in-flight file worker.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024)
		return &b
	},
}

// GetScanBuffer returns a pooled scratch buffer for bufio.Scanner.Buffer,
// sized for the common case and grown by the scanner as needed.
func GetScanBuffer() []byte {
	return *(bufPool.Get().(*[]byte))
}

// PutScanBuffer returns a scratch buffer to the pool for reuse by the
// next file worker.
func PutScanBuffer(buf []byte) {
	buf = buf[:0]
	bufPool.Put(&buf)
}
