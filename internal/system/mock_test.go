package system

import (
	"context"
	"testing"
)

func TestMockFS_ReadFile(t *testing.T) {
	fs := NewMockFS()
	fs.AddFile("/home/u/.openclaw/openclaw.json", []byte(`{"gateway":{}}`))

	data, err := fs.ReadFile("/home/u/.openclaw/openclaw.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"gateway":{}}` {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := fs.ReadFile("/nope"); err == nil {
		t.Error("ReadFile() on missing file should error")
	}
}

func TestMockFS_Exists(t *testing.T) {
	fs := NewMockFS()
	fs.AddFile("/a", []byte("x"))

	if !fs.Exists("/a") {
		t.Error("Exists(/a) should be true")
	}
	if fs.Exists("/b") {
		t.Error("Exists(/b) should be false")
	}
}

func TestMockExecutor_Responses(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("tailscale status", []byte(`{"Self":{}}`), nil)
	exec.AddResponse("tailscale serve", []byte("https://x:443/"), nil)

	out, err := exec.Execute(context.Background(), "tailscale", "status", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if string(out) != `{"Self":{}}` {
		t.Errorf("Execute() = %q, want status response", out)
	}

	out, _ = exec.Execute(context.Background(), "tailscale", "serve", "status")
	if string(out) != "https://x:443/" {
		t.Errorf("Execute() = %q, want serve response", out)
	}

	if len(exec.Commands) != 2 {
		t.Errorf("recorded %d commands, want 2", len(exec.Commands))
	}

	last, ok := exec.LastCommand()
	if !ok || last.Args[0] != "serve" {
		t.Errorf("LastCommand() = %+v", last)
	}
}

func TestMockExecutor_MissingTools(t *testing.T) {
	exec := NewMockExecutor()
	exec.MissingTools = []string{"tailscale"}

	if _, err := exec.LookPath("tailscale"); err == nil {
		t.Error("LookPath(tailscale) should report absent")
	}
	if _, err := exec.LookPath("lsof"); err != nil {
		t.Errorf("LookPath(lsof) error = %v", err)
	}
}
