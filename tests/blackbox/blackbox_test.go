package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil { t.Fatalf("listen: %v", err) }
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil { t.Fatalf("split: %v", err) }
	cleanup := func(){ _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok { t.Fatal("runtime.Caller failed") }
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	root := filepath.Dir(filepath.Dir(bbDir))
	return root
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "snnd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/snnd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

func createTempAssetsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write temp asset %s: %v", p, err)
		}
	}
	return dir
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, port int, extra ...string) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := append([]string{"serve", "--addr", addr}, extra...)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	// Build server binary
	bin := buildBinary(t)
	assetsDir := createTempAssetsDir(t, "yolov3-tiny_layers.json", "spatialDenoise.json")
	// Reserve a free port, then release listener before starting the server
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port, "--assets-dir", assetsDir, "--apply-delay", "100ms",
		"--journal", filepath.Join(t.TempDir(), "events.db"))

	// /models
	resp, body := get(t, sp.base+"/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/models %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/models content-type=%s", ct)
	}
	var modelsResp struct {
		Models []struct {
			ID        string `json:"id"`
			Available bool   `json:"available"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &modelsResp); err != nil {
		t.Fatalf("/models json: %v body=%s", err, string(body))
	}
	avail := 0
	for _, m := range modelsResp.Models {
		if m.Available {
			avail++
		}
	}
	if avail != 2 {
		t.Fatalf("expected 2 available models, got %d", avail)
	}

	// /readyz is ready before anything was committed
	resp, body = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz initial %d %s", resp.StatusCode, string(body))
	}

	resp, body = postJSON(t, sp.base+"/menu/select", []byte(`{"option":"yolov3"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/menu/select %d %s", resp.StatusCode, string(body))
	}
	resp, body = postJSON(t, sp.base+"/menu/run", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/menu/run %d %s", resp.StatusCode, string(body))
	}

	// /progress eventually dismisses the spinner
	deadline := time.Now().Add(3 * time.Second)
	for {
		_, body = get(t, sp.base+"/progress")
		var p struct {
			Loading   bool `json:"loading"`
			Dismissed bool `json:"dismissed"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			t.Fatalf("/progress json: %v body=%s", err, string(body))
		}
		if p.Dismissed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("/progress never dismissed; last=%s", string(body))
		}
		time.Sleep(25 * time.Millisecond)
	}

	resp, body = get(t, sp.base+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status %d %s", resp.StatusCode, string(body))
	}
	var statusResp struct {
		ActiveCategory string `json:"active_category"`
		AppliesTotal   int    `json:"applies_total"`
	}
	if err := json.Unmarshal(body, &statusResp); err != nil {
		t.Fatalf("/status json: %v body=%s", err, string(body))
	}
	if statusResp.ActiveCategory != "detector" || statusResp.AppliesTotal != 1 {
		t.Fatalf("unexpected status: %s", string(body))
	}

	resp, body = get(t, sp.base+"/events?limit=10")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("apply_done")) {
		t.Fatalf("/events %d %s", resp.StatusCode, string(body))
	}
}

func TestBlackbox_RunDisabled_409(t *testing.T) {
	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port)

	resp, body := postJSON(t, sp.base+"/menu/run", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d, body=%s", resp.StatusCode, string(body))
	}
}

func TestBlackbox_HiddenShaderChoice(t *testing.T) {
	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port, "--no-shader-choice")

	resp, body := postJSON(t, sp.base+"/menu/select", []byte(`{"option":"compute_shader"}`))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for hidden shader option, got %d, body=%s", resp.StatusCode, string(body))
	}
}
