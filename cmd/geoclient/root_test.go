package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gezibash/geoclient/internal/api"
	"github.com/gezibash/geoclient/internal/command"
	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

var testID = uuid.MustParse("0b3f5c4e-8d1a-4c2b-9f6e-7a1d2c3b4e5f")

func runMock(t *testing.T, mc *mockClient, host **url.URL, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	isolate(t)
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut, factoryFor(mc, host))
	return out.String(), errOut.String(), code
}

func TestRoot_MissingOptionsSendNothing(t *testing.T) {
	id := testID.String()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown command", []string{"-c", "fetch"}, `unknown command "fetch"`},
		{"add without file", []string{"-c", "add"}, "add requires --file"},
		{"update without file", []string{"-c", "update", "-u", id}, "update requires --file"},
		{"update without uuid", []string{"-c", "update", "-f", "f.json"}, "update requires --uuid"},
		{"delete without uuid", []string{"-c", "delete"}, "delete requires --uuid"},
		{"get_uuid without uuid", []string{"-c", "get_uuid"}, "get_uuid requires --uuid"},
		{"flag without value", []string{"-c"}, "flag needs an argument"},
		{"unknown flag", []string{"-c", "get_uuids", "--retries", "3"}, "unknown flag"},
		{"unknown output format", []string{"-c", "get_uuids", "-o", "xml"}, `unknown output format "xml"`},
		{"positional argument", []string{"-c", "get_uuids", "extra"}, `unexpected argument "extra"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mockClient{}
			stdout, stderr, code := runMock(t, mc, nil, tt.args...)

			if code != exitUsage {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, exitUsage, stderr)
			}
			if mc.calls != 0 {
				t.Errorf("client calls = %d, want 0", mc.calls)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr should mention %q, got:\n%s", tt.want, stderr)
			}
			if !strings.Contains(stderr, "Usage:") {
				t.Errorf("stderr should include usage text, got:\n%s", stderr)
			}
		})
	}
}

func TestRoot_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		t.Run(flag, func(t *testing.T) {
			var built bool
			isolate(t)
			var out, errOut bytes.Buffer
			code := run(context.Background(), []string{flag}, &out, &errOut,
				func(*url.URL, ...api.Option) FeatureClient {
					built = true
					return &mockClient{}
				})

			if code != exitOK {
				t.Errorf("exit code = %d, want 0", code)
			}
			if built {
				t.Error("help should not build a client")
			}
			for _, want := range []string{"Usage:", "--host", "--command", "--file", "--uuid", "get_uuids"} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("help should mention %q, got:\n%s", want, out.String())
				}
			}
			if errOut.Len() != 0 {
				t.Errorf("stderr = %q, want empty", errOut.String())
			}
		})
	}
}

func TestRoot_DefaultHost(t *testing.T) {
	var host *url.URL
	mc := &mockClient{getAllFn: func(context.Context) (string, error) { return "[]", nil }}

	_, stderr, code := runMock(t, mc, &host, "-c", "get_uuids")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if host == nil || host.String() != command.DefaultHost {
		t.Errorf("host = %v, want %s", host, command.DefaultHost)
	}
}

func TestRoot_HostFromEnv(t *testing.T) {
	var host *url.URL
	mc := &mockClient{getAllFn: func(context.Context) (string, error) { return "[]", nil }}

	t.Setenv("GEOCLIENT_HOST", "https://env.example/api/")
	_, stderr, code := runMock(t, mc, &host, "-c", "get_uuids")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if host.String() != "https://env.example/api/" {
		t.Errorf("host = %s, want value from GEOCLIENT_HOST", host)
	}
}

func TestRoot_HostFlagOverridesEnv(t *testing.T) {
	var host *url.URL
	mc := &mockClient{getAllFn: func(context.Context) (string, error) { return "[]", nil }}

	t.Setenv("GEOCLIENT_HOST", "https://env.example/api/")
	_, _, code := runMock(t, mc, &host, "-c", "get_uuids", "-t", "http://flag.example:8080/api")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if host.String() != "http://flag.example:8080/api" {
		t.Errorf("host = %s, want value from -t", host)
	}
}

func TestRoot_InvalidInputBeforeRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"malformed host", []string{"-c", "get_uuids", "-t", "::not a uri"}, "invalid_host"},
		{"host without scheme", []string{"-c", "get_uuids", "-t", "127.0.0.1:5000/api/"}, "invalid_host"},
		{"bad uuid", []string{"-c", "get_uuid", "-u", "not-a-uuid"}, "invalid_uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var host *url.URL
			mc := &mockClient{}
			_, stderr, code := runMock(t, mc, &host, tt.args...)

			if code != exitUsage {
				t.Errorf("exit code = %d, want %d", code, exitUsage)
			}
			if host != nil {
				t.Errorf("client was built for %s", host)
			}
			if !strings.Contains(stderr, "Error ["+tt.code+"]") {
				t.Errorf("stderr should carry code %q, got:\n%s", tt.code, stderr)
			}
		})
	}
}

func TestRoot_Commands(t *testing.T) {
	echoed := uuid.MustParse("11111111-2222-4333-8444-555555555555")

	tests := []struct {
		name   string
		args   []string
		mc     func(t *testing.T) *mockClient
		stdout string
	}{
		{
			name: "add prints identifier",
			args: []string{"-c", "add", "-f", "feature.json"},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{addFn: func(_ context.Context, path string) (uuid.UUID, error) {
					if path != "feature.json" {
						t.Errorf("path = %q", path)
					}
					return testID, nil
				}}
			},
			stdout: testID.String() + "\n",
		},
		{
			name: "update posts to identifier",
			args: []string{"-c", "update", "-f", "feature.json", "-u", testID.String()},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{addAtFn: func(_ context.Context, path string, id uuid.UUID) (uuid.UUID, error) {
					if path != "feature.json" || id != testID {
						t.Errorf("AddAt(%q, %s)", path, id)
					}
					return echoed, nil
				}}
			},
			stdout: echoed.String() + "\n",
		},
		{
			name: "delete prints identifier",
			args: []string{"-c", "delete", "-u", testID.String()},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{deleteFn: func(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
					if id != testID {
						t.Errorf("Delete(%s)", id)
					}
					return id, nil
				}}
			},
			stdout: testID.String() + "\n",
		},
		{
			name: "get_uuid prints body",
			args: []string{"-c", "get_uuid", "--uuid", testID.String()},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{getFn: func(context.Context, uuid.UUID) (string, error) {
					return `{"type":"Feature"}`, nil
				}}
			},
			stdout: `{"type":"Feature"}` + "\n",
		},
		{
			name: "get_uuids prints body",
			args: []string{"--command", "get_uuids"},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{getAllFn: func(context.Context) (string, error) {
					return "not even json", nil
				}}
			},
			stdout: "not even json\n",
		},
		{
			name: "get_uuids accepts an unused uuid",
			args: []string{"-c", "get_uuids", "-u", testID.String()},
			mc: func(t *testing.T) *mockClient {
				return &mockClient{getAllFn: func(context.Context) (string, error) { return "[]", nil }}
			},
			stdout: "[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := tt.mc(t)
			stdout, stderr, code := runMock(t, mc, nil, tt.args...)

			if code != exitOK {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}
			if mc.calls != 1 {
				t.Errorf("client calls = %d, want 1", mc.calls)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
		})
	}
}

func TestRoot_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"connection", fmt.Errorf("%w: dial tcp 127.0.0.1:5000: connection refused", geoerrors.ErrConnection), "connection"},
		{"response format", fmt.Errorf("%w: 500 Internal Server Error: \"oops\"", geoerrors.ErrResponseFormat), "response_format"},
		{"unreadable file", fmt.Errorf("%w: open feature.json: no such file", geoerrors.ErrInvalidInput), "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mockClient{addFn: func(context.Context, string) (uuid.UUID, error) {
				return uuid.Nil, tt.err
			}}
			stdout, stderr, code := runMock(t, mc, nil, "-c", "add", "-f", "feature.json")

			if code != exitFailure {
				t.Errorf("exit code = %d, want %d", code, exitFailure)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, "Error ["+tt.code+"]") {
				t.Errorf("stderr should carry code %q, got:\n%s", tt.code, stderr)
			}
			if strings.Contains(stderr, "Usage:") {
				t.Errorf("runtime failures should not print usage, got:\n%s", stderr)
			}
		})
	}
}

func TestRoot_JSONOutput(t *testing.T) {
	mc := &mockClient{addFn: func(context.Context, string) (uuid.UUID, error) { return testID, nil }}
	stdout, stderr, code := runMock(t, mc, nil, "-c", "add", "-f", "feature.json", "-o", "json")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	var envelope struct {
		Meta struct {
			Type string `json:"type"`
		} `json:"meta"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &envelope); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if envelope.Meta.Type != "add" {
		t.Errorf("meta.type = %q, want add", envelope.Meta.Type)
	}
	if envelope.Data["uuid"] != testID.String() {
		t.Errorf("data.uuid = %v, want %s", envelope.Data["uuid"], testID)
	}
	if envelope.Data["host"] != command.DefaultHost {
		t.Errorf("data.host = %v", envelope.Data["host"])
	}
}

func TestRoot_JSONError(t *testing.T) {
	mc := &mockClient{}
	stdout, stderr, code := runMock(t, mc, nil, "-c", "delete", "-o", "json")
	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	if mc.calls != 0 {
		t.Errorf("client calls = %d, want 0", mc.calls)
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	dec := json.NewDecoder(strings.NewReader(stderr))
	if err := dec.Decode(&envelope); err != nil {
		t.Fatalf("stderr does not start with JSON: %v\n%s", err, stderr)
	}
	if envelope.Data["code"] != "usage" {
		t.Errorf("data.code = %v, want usage", envelope.Data["code"])
	}
	rest, _ := io.ReadAll(dec.Buffered())
	if !strings.Contains(string(rest), "Usage:") {
		t.Errorf("usage text should follow the JSON error, got:\n%s", stderr)
	}
}

func TestRoot_UsageInEveryFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown"} {
		t.Run(format, func(t *testing.T) {
			mc := &mockClient{}
			_, stderr, code := runMock(t, mc, nil, "-o", format, "-c", "delete")
			if code != exitUsage {
				t.Fatalf("exit code = %d, want %d", code, exitUsage)
			}
			if mc.calls != 0 {
				t.Errorf("client calls = %d, want 0", mc.calls)
			}
			if !strings.Contains(stderr, "Usage:") {
				t.Errorf("stderr should include usage text, got:\n%s", stderr)
			}
		})
	}
}

func TestRoot_EmptyHostFlag(t *testing.T) {
	var host *url.URL
	mc := &mockClient{}
	_, stderr, code := runMock(t, mc, &host, "-c", "get_uuids", "-t", "")

	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if host != nil {
		t.Errorf("client was built for %s", host)
	}
	if !strings.Contains(stderr, "Error [invalid_host]") {
		t.Errorf("stderr should carry code invalid_host, got:\n%s", stderr)
	}
}

func TestRoot_FailureNamesHost(t *testing.T) {
	mc := &mockClient{getAllFn: func(context.Context) (string, error) {
		return "", fmt.Errorf("%w: connection refused", geoerrors.ErrConnection)
	}}
	_, stderr, code := runMock(t, mc, nil, "-c", "get_uuids", "-t", "http://features.local/api/")
	if code != exitFailure {
		t.Fatalf("exit code = %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr, "Host: http://features.local/api/") {
		t.Errorf("stderr should name the host, got:\n%s", stderr)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, code := runMock(t, &mockClient{}, nil, "version")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Version:", version, "Go:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("version output should contain %q, got:\n%s", want, stdout)
		}
	}
}
