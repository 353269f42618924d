package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// rpcResponse is the subset of a JSON-RPC response the tests inspect
type rpcResponse struct {
	Result struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func handle(t *testing.T, deps Deps, logger *zap.Logger, message string) rpcResponse {
	t.Helper()

	s := NewServer("mtgmcp", "test", deps, logger)
	raw, err := json.Marshal(s.HandleMessage(context.Background(), []byte(message)))
	if err != nil {
		t.Fatal(err)
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decoding %s: %v", raw, err)
	}
	return resp
}

func TestServer_ListsTools(t *testing.T) {
	resp := handle(t, newTestDeps().Deps, nil, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	got := map[string]bool{}
	for _, tool := range resp.Result.Tools {
		got[tool.Name] = true
	}
	for _, name := range []string{"ping", "get_card_data", "search_cards", "get_deck"} {
		if !got[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestServer_Ping(t *testing.T) {
	resp := handle(t, newTestDeps().Deps, nil,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"ping","arguments":{}}}`)

	if resp.Error != nil || len(resp.Result.Content) != 1 || resp.Result.Content[0].Text != "pong" {
		t.Errorf("unexpected ping response: %+v", resp)
	}
}

func TestServer_InvalidParamsIsProtocolError(t *testing.T) {
	resp := handle(t, newTestDeps().Deps, nil,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_deck","arguments":{"deck_id":""}}}`)

	if resp.Error == nil {
		t.Fatalf("expected protocol error, got %+v", resp.Result)
	}
	if resp.Error.Code != mcp.INTERNAL_ERROR {
		t.Errorf("Code = %d, want %d", resp.Error.Code, mcp.INTERNAL_ERROR)
	}
	if !strings.HasPrefix(resp.Error.Message, mcp.ErrInvalidParams.Error()) {
		t.Errorf("message should start with %q: %q", mcp.ErrInvalidParams, resp.Error.Message)
	}
}

func TestServer_UpstreamFailureIsToolResult(t *testing.T) {
	resp := handle(t, newTestDeps().Deps, nil,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"get_deck","arguments":{"deck_id":"404"}}}`)

	if resp.Error != nil {
		t.Fatalf("unexpected protocol error: %+v", resp.Error)
	}
	if !resp.Result.IsError {
		t.Error("expected isError result")
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	deps := newTestDeps().Deps

	handle(t, deps, zap.New(core), `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"ping","arguments":{}}}`)
	handle(t, deps, zap.New(core), `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"get_deck","arguments":{"deck_id":"404"}}}`)
	handle(t, deps, zap.New(core), `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_deck","arguments":{}}}`)

	tests := []struct {
		message string
		tool    string
	}{
		{"tool call", "ping"},
		{"tool call failed", "get_deck"},
		{"tool call rejected", "get_deck"},
	}

	entries := logs.All()
	if len(entries) != len(tests) {
		t.Fatalf("expected %d log entries, got %d", len(tests), len(entries))
	}
	ids := map[string]bool{}
	for i, tt := range tests {
		e := entries[i]
		fields := e.ContextMap()
		if e.Message != tt.message || fields["tool"] != tt.tool {
			t.Errorf("entry %d = %q tool=%v, want %q tool=%s", i, e.Message, fields["tool"], tt.message, tt.tool)
		}
		id, _ := fields["request_id"].(string)
		if id == "" || ids[id] {
			t.Errorf("entry %d has missing or repeated request_id %q", i, id)
		}
		ids[id] = true
	}
}
