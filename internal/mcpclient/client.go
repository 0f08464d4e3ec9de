// internal/mcpclient/client.go
// Package mcpclient is a minimal MCP client over a child process's stdio,
// used by the check harness to exercise the server end to end. Frames are
// newline-delimited JSON-RPC 2.0 messages.
package mcpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/weatherapp/weather-mcp/internal/logging"
)

const protocolVersion = "2024-11-05"

type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Tool describes one advertised tool, including its argument schema.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// Client drives one spawned MCP server process. Calls are serialized; the
// protocol here is strictly request/response with notifications skipped.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader
	writer *bufio.Writer

	rpcMu sync.Mutex
	seqMu sync.Mutex
	seq   int64

	toolIndex map[string]Tool
}

// Start launches the server binary with the given arguments and performs
// the initialize handshake.
func Start(ctx context.Context, binary string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}

	c := &Client{
		cmd:       cmd,
		stdin:     stdin,
		reader:    bufio.NewReader(stdout),
		writer:    bufio.NewWriter(stdin),
		toolIndex: make(map[string]Tool),
	}

	if err := c.initialize(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "weather-mcp-check",
			"version": "dev",
		},
	}
	if _, err := c.rpcCall(ctx, "initialize", params, "initialize"); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

// ListTools fetches the advertised tools and indexes their input schemas
// for argument validation on later calls.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	result, err := c.rpcCall(ctx, "tools/list", map[string]any{}, "tools/list")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}
	for _, tool := range payload.Tools {
		c.toolIndex[tool.Name] = tool
	}
	return payload.Tools, nil
}

// CallTool validates args against the tool's advertised schema (when
// known) and invokes it, returning the concatenated text content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	if tool, ok := c.toolIndex[name]; ok {
		if err := validateArguments(tool.InputSchema, args); err != nil {
			return "", fmt.Errorf("tool %s: %w", name, err)
		}
	}

	params := map[string]any{
		"name":      name,
		"arguments": args,
	}
	result, err := c.rpcCall(ctx, "tools/call", params, name)
	if err != nil {
		return "", err
	}

	var payload struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return "", fmt.Errorf("decode tools/call result: %w", err)
	}

	var parts []string
	for _, part := range payload.Content {
		if strings.EqualFold(part.Type, "text") && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// ReadResource reads a resource by URI and returns its text content.
func (c *Client) ReadResource(ctx context.Context, uri string) (string, error) {
	result, err := c.rpcCall(ctx, "resources/read", map[string]any{"uri": uri}, uri)
	if err != nil {
		return "", err
	}
	var payload struct {
		Contents []struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return "", fmt.Errorf("decode resources/read result: %w", err)
	}
	if len(payload.Contents) == 0 {
		return "", fmt.Errorf("resource %s returned no contents", uri)
	}
	return payload.Contents[0].Text, nil
}

// Close shuts down the child process, giving it a short grace period
// after stdin closes before killing it.
func (c *Client) Close() error {
	var firstErr error

	if c.stdin != nil {
		_ = c.stdin.Close()
	}

	if c.cmd != nil {
		done := make(chan error, 1)
		go func() {
			done <- c.cmd.Wait()
		}()
		select {
		case err := <-done:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			if err := <-done; err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (c *Client) nextID() int64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.seq++
	return c.seq
}

func (c *Client) rpcCall(ctx context.Context, method string, params map[string]any, toolLabel string) (json.RawMessage, error) {
	c.rpcMu.Lock()
	defer c.rpcMu.Unlock()

	id := c.nextID()
	payload := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	logging.LogRequest("check->server", toolLabel, data)

	if err := c.writeFrame(data); err != nil {
		return nil, err
	}

	resp, err := c.readResponse(ctx, id)
	if err != nil {
		return nil, err
	}
	logging.LogRequest("server->check", toolLabel, resp.Result)

	if resp.Error != nil {
		return nil, fmt.Errorf("%s", resp.Error.Message)
	}
	return resp.Result, nil
}

func (c *Client) writeFrame(data []byte) error {
	if _, err := c.writer.Write(data); err != nil {
		return err
	}
	if err := c.writer.WriteByte('\n'); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Client) readResponse(ctx context.Context, id int64) (jsonrpcResponse, error) {
	type result struct {
		resp jsonrpcResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		r, err := c.readResponseBlocking(id)
		done <- result{resp: r, err: err}
	}()

	select {
	case <-ctx.Done():
		return jsonrpcResponse{}, ctx.Err()
	case res := <-done:
		return res.resp, res.err
	}
}

// readResponseBlocking reads frames until it sees the response matching
// id, skipping notifications and any stale responses.
func (c *Client) readResponseBlocking(id int64) (jsonrpcResponse, error) {
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return jsonrpcResponse{}, err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var resp jsonrpcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return jsonrpcResponse{}, fmt.Errorf("malformed frame: %w", err)
		}
		if len(resp.ID) == 0 {
			// Notification; not ours.
			continue
		}
		if normalizeID(resp.ID) != strconv.FormatInt(id, 10) {
			continue
		}
		return resp, nil
	}
}

func normalizeID(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '"' {
		if unquoted, err := strconv.Unquote(trimmed); err == nil {
			return unquoted
		}
		trimmed = strings.Trim(trimmed, "\"")
	}
	return trimmed
}
