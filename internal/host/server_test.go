package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/inkstone-labs/inklist/internal/testutil"
	"github.com/inkstone-labs/inklist/pkg/edit"
)

// frame encodes a message with a Content-Length header.
func frame(t *testing.T, msg any) string {
	t.Helper()
	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

// readFrames decodes every framed message the server wrote.
func readFrames(t *testing.T, out *bytes.Buffer) []JSONRPCMessage {
	t.Helper()
	var msgs []JSONRPCMessage
	data := out.String()
	for len(data) > 0 {
		head, rest, ok := strings.Cut(data, "\r\n\r\n")
		if !ok {
			t.Fatalf("missing header separator in %q", data)
		}
		length := 0
		for _, line := range strings.Split(head, "\r\n") {
			if v, found := strings.CutPrefix(line, "Content-Length: "); found {
				n, err := strconv.Atoi(v)
				if err != nil {
					t.Fatalf("bad Content-Length %q: %v", v, err)
				}
				length = n
			}
		}
		if length <= 0 || length > len(rest) {
			t.Fatalf("bad frame length %d (have %d bytes)", length, len(rest))
		}
		var msg JSONRPCMessage
		if err := json.Unmarshal([]byte(rest[:length]), &msg); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		msgs = append(msgs, msg)
		data = rest[length:]
	}
	return msgs
}

// runSession feeds framed messages through a fresh server rooted at root
// and returns everything it wrote. The session ends at EOF.
func runSession(t *testing.T, root string, msgs ...any) []JSONRPCMessage {
	t.Helper()
	var in bytes.Buffer
	for _, m := range msgs {
		in.WriteString(frame(t, m))
	}
	var out bytes.Buffer
	s := NewServer(&in, &out, testutil.NewTestLogger(t))
	if root != "" {
		s.SetProjectRoot(root)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return readFrames(t, &out)
}

// responses filters out notifications.
func responses(msgs []JSONRPCMessage) []JSONRPCMessage {
	var out []JSONRPCMessage
	for _, m := range msgs {
		if m.ID != nil {
			out = append(out, m)
		}
	}
	return out
}

func decodeDirective(t *testing.T, msg JSONRPCMessage) edit.Directive {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("unexpected error response: %+v", msg.Error)
	}
	var d edit.Directive
	if err := json.Unmarshal(msg.Result, &d); err != nil {
		t.Fatalf("decode directive: %v", err)
	}
	return d
}

func TestServer_Initialize(t *testing.T) {
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{"rootUri": ""}},
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}
	if string(*got[0].ID) != "1" {
		t.Errorf("expected id 1, got %s", string(*got[0].ID))
	}

	var result InitializeResult
	if err := json.Unmarshal(got[0].Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	sync := result.Capabilities.TextDocumentSync
	if sync == nil || !sync.OpenClose || sync.Change != TextDocumentSyncKindFull {
		t.Errorf("expected full open/close sync, got %+v", sync)
	}
	if !result.Capabilities.ListEditProvider {
		t.Error("expected listEditProvider capability")
	}
}

func TestServer_GestureConfirm(t *testing.T) {
	uri := "file:///notes.md"
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{"rootUri": ""}},
		map[string]any{"jsonrpc": "2.0", "method": "initialized"},
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "markdown", "version": 1, "text": "memo:\n- alpha\n"},
		}},
		map[string]any{"jsonrpc": "2.0", "id": 2, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 2, "gesture": "confirm",
		}},
	))
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(got))
	}

	d := decodeDirective(t, got[1])
	if d.Passthrough {
		t.Fatal("expected a handled gesture, got passthrough")
	}
	if len(d.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(d.Edits))
	}
	want := edit.Edit{Op: edit.OpInsertAfter, Line: 2, Text: "- "}
	if d.Edits[0] != want {
		t.Errorf("expected edit %+v, got %+v", want, d.Edits[0])
	}
	if d.Cursor == nil || d.Cursor.Line != 3 || d.Cursor.Column != 2 {
		t.Errorf("expected cursor 3:2, got %+v", d.Cursor)
	}
	if !d.EnterInsert {
		t.Error("expected enter_insert")
	}
}

func TestServer_GestureInactiveFiletype(t *testing.T) {
	uri := "file:///script.py"
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "python", "version": 1, "text": "- alpha\n"},
		}},
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 1, "gesture": "confirm",
		}},
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}

	d := decodeDirective(t, got[0])
	if !d.Passthrough {
		t.Error("gestures on inactive filetypes must pass through")
	}
	if len(d.Edits) != 0 {
		t.Errorf("expected no edits, got %+v", d.Edits)
	}
}

func TestServer_GestureErrors(t *testing.T) {
	uri := "file:///notes.md"
	didOpen := map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
		"textDocument": map[string]any{"uri": uri, "languageId": "markdown", "version": 1, "text": "- a\n"},
	}}

	tests := []struct {
		name    string
		params  map[string]any
		wantMsg string
	}{
		{
			name:    "unknown document",
			params:  map[string]any{"uri": "file:///other.md", "line": 1, "gesture": "confirm"},
			wantMsg: "not open",
		},
		{
			name:    "unknown gesture",
			params:  map[string]any{"uri": uri, "line": 1, "gesture": "fold"},
			wantMsg: "unknown gesture",
		},
		{
			name:    "line out of range",
			params:  map[string]any{"uri": uri, "line": 99, "gesture": "confirm"},
			wantMsg: "out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responses(runSession(t, t.TempDir(),
				didOpen,
				map[string]any{"jsonrpc": "2.0", "id": 1, "method": "listEdit/gesture", "params": tt.params},
			))
			if len(got) != 1 {
				t.Fatalf("expected 1 response, got %d", len(got))
			}
			if got[0].Error == nil {
				t.Fatalf("expected an error response, got result %s", string(got[0].Result))
			}
			if got[0].Error.Code != -32602 {
				t.Errorf("expected code -32602, got %d", got[0].Error.Code)
			}
			if !strings.Contains(got[0].Error.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, got[0].Error.Message)
			}
		})
	}
}

func TestServer_DidChangeFullSync(t *testing.T) {
	uri := "file:///notes.md"
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "markdown", "version": 1, "text": "- a\n"},
		}},
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didChange", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "version": 2},
			"contentChanges": []map[string]any{
				{"text": "stale\n"},
				{"text": "1. one\n2. two\n"},
			},
		}},
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 2, "gesture": "confirm",
		}},
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}

	d := decodeDirective(t, got[0])
	want := edit.Edit{Op: edit.OpInsertAfter, Line: 2, Text: "3. "}
	if len(d.Edits) != 1 || d.Edits[0] != want {
		t.Errorf("expected edit %+v, got %+v", want, d.Edits)
	}
}

func TestServer_ConfigFromRootURI(t *testing.T) {
	root := t.TempDir()
	cfg := "markers:\n  - \"~\"\n  - \"-\"\nfiletypes: []\n"
	if err := os.WriteFile(filepath.Join(root, "inklist.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	uri := "file:///notes.txt"
	got := responses(runSession(t, "",
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{"rootUri": "file://" + root}},
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "text", "version": 1, "text": "~ task\n"},
		}},
		map[string]any{"jsonrpc": "2.0", "id": 2, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 1, "gesture": "confirm",
		}},
	))
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(got))
	}

	d := decodeDirective(t, got[1])
	want := edit.Edit{Op: edit.OpInsertAfter, Line: 1, Text: "~ "}
	if len(d.Edits) != 1 || d.Edits[0] != want {
		t.Errorf("expected edit %+v, got %+v", want, d.Edits)
	}
}

func TestServer_IndentUnitOverride(t *testing.T) {
	uri := "file:///notes.md"
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "method": "textDocument/didOpen", "params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "markdown", "version": 1, "text": "topics:\n"},
		}},
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 1, "gesture": "confirm", "indentUnit": "\t",
		}},
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}

	d := decodeDirective(t, got[0])
	want := edit.Edit{Op: edit.OpInsertAfter, Line: 1, Text: "\t- "}
	if len(d.Edits) != 1 || d.Edits[0] != want {
		t.Errorf("expected edit %+v, got %+v", want, d.Edits)
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "textDocument/hover"},
		map[string]any{"jsonrpc": "2.0", "method": "workspace/didChangeWatchedFiles"},
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 response, got %d", len(got))
	}
	if got[0].Error == nil || got[0].Error.Code != -32601 {
		t.Errorf("expected method-not-found error, got %+v", got[0])
	}
}

func TestServer_ExitStopsLoop(t *testing.T) {
	uri := "file:///notes.md"
	got := responses(runSession(t, t.TempDir(),
		map[string]any{"jsonrpc": "2.0", "id": 1, "method": "shutdown"},
		map[string]any{"jsonrpc": "2.0", "method": "exit"},
		// Anything after exit must not be processed.
		map[string]any{"jsonrpc": "2.0", "id": 2, "method": "listEdit/gesture", "params": map[string]any{
			"uri": uri, "line": 1, "gesture": "confirm",
		}},
	))
	if len(got) != 1 {
		t.Fatalf("expected only the shutdown response, got %d responses", len(got))
	}
	if got[0].Error != nil {
		t.Errorf("shutdown should succeed, got %+v", got[0].Error)
	}
}

func TestServer_ReloadConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "inklist.yaml")
	if err := os.WriteFile(path, []byte("markers: [\"-\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	s := NewServer(strings.NewReader(""), &out, testutil.NewTestLogger(t))
	s.SetProjectRoot(root)

	grammar, _ := s.snapshot()
	if got := grammar.Markers(); len(got) != 1 || got[0] != "-" {
		t.Fatalf("expected markers [-], got %v", got)
	}

	if err := os.WriteFile(path, []byte("markers: [\"*\", \"-\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s.ReloadConfig()

	grammar, _ = s.snapshot()
	if got := grammar.Markers(); len(got) != 2 || got[0] != "*" {
		t.Errorf("expected reloaded markers [* -], got %v", got)
	}
}

func TestServer_ReloadConfigKeepsGrammarOnError(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "inklist.yaml")
	if err := os.WriteFile(path, []byte("markers: [\"*\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	s := NewServer(strings.NewReader(""), &out, testutil.NewTestLogger(t))
	s.SetProjectRoot(root)

	// Duplicate markers do not compile.
	if err := os.WriteFile(path, []byte("markers: [\"-\", \"-\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s.ReloadConfig()

	grammar, _ := s.snapshot()
	if got := grammar.Markers(); len(got) != 1 || got[0] != "*" {
		t.Errorf("broken config must keep the previous grammar, got %v", got)
	}

	msgs := readFrames(t, &out)
	found := false
	for _, m := range msgs {
		if m.Method == "window/showMessage" {
			found = true
		}
	}
	if !found {
		t.Error("expected a window/showMessage warning after a failed reload")
	}
}

func TestWatchConfig_NoPathWaitsForCancel(t *testing.T) {
	s := NewServer(strings.NewReader(""), io.Discard, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.WatchConfig(ctx, "") }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("WatchConfig returned %v, want nil", err)
	}
}
