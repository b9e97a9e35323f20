package bridge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quillpad/internal/bridge"
	"quillpad/internal/dialogs"
	"quillpad/internal/fsio"
	"quillpad/internal/logger"
	"quillpad/internal/recent"
	"quillpad/internal/store"
)

// pickFile resolves every dialog request with a fixed path.
type pickFile struct{ path string }

func (p pickFile) ShowOpen(done func(string, error)) { go done(p.path, nil) }
func (p pickFile) ShowSave(done func(string, error)) { go done(p.path, nil) }

type envelope struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, *bridge.Hub) {
	t.Helper()

	log := logger.NewNop()
	kv, err := store.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}

	dispatcher := bridge.NewDispatcher(log)
	bridge.RegisterCoreHandlers(dispatcher, bridge.Services{
		Recent:  recent.NewRegistry(),
		Files:   fsio.NewService(log),
		Store:   kv,
		Dialogs: dialogs.NewService(pickFile{path: "/picked/file.txt"}, log),
	})

	hub := bridge.NewHub(log)
	srv := bridge.NewServer("127.0.0.1:0", dispatcher, hub, log)
	return httptest.NewServer(srv.Handler()), hub
}

func invoke(t *testing.T, srv *httptest.Server, name, payload string) (int, envelope) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/invoke/"+name, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("invoke %s: %v", name, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.ID == "" {
		t.Fatal("expected a request id in the envelope")
	}
	return resp.StatusCode, env
}

func TestRecentFilesRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	status, env := invoke(t, srv, "add-to-recent-files", `{"filePath":"/a/b/report.pdf"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Error)
	}

	status, env = invoke(t, srv, "get-recent-files", ``)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var entries []recent.Entry
	if err := json.Unmarshal(env.Result, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "/a/b/report.pdf" || entries[0].Name != "report.pdf" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestRecentFilesLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	for _, p := range []string{"/one", "/two", "/three"} {
		invoke(t, srv, "add-to-recent-files", `{"filePath":"`+p+`"}`)
	}
	_, env := invoke(t, srv, "get-recent-files", `{"limit":2}`)
	var entries []recent.Entry
	json.Unmarshal(env.Result, &entries)
	if len(entries) != 2 || entries[0].Path != "/three" {
		t.Fatalf("unexpected limited entries %+v", entries)
	}
}

func TestAddToRecentFilesRunsChangeHook(t *testing.T) {
	log := logger.NewNop()
	kv, err := store.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}

	notified := make(chan struct{}, 1)
	dispatcher := bridge.NewDispatcher(log)
	bridge.RegisterCoreHandlers(dispatcher, bridge.Services{
		Recent:  recent.NewRegistry(),
		Files:   fsio.NewService(log),
		Store:   kv,
		Dialogs: dialogs.NewService(pickFile{path: "/picked/file.txt"}, log),
		RecentChanged: func() {
			notified <- struct{}{}
		},
	})

	if _, err := dispatcher.Invoke(context.Background(), "add-to-recent-files", json.RawMessage(`{"filePath":"/a/b.txt"}`)); err != nil {
		t.Fatalf("add-to-recent-files failed: %v", err)
	}

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("registration over the bridge did not run the change hook")
	}
}

func TestAddToRecentFilesRejectsEmptyPath(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	status, _ := invoke(t, srv, "add-to-recent-files", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestUnknownRequestIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	status, env := invoke(t, srv, "no-such-request", `{}`)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if env.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestFileReadWriteOverBridge(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "doc.txt")
	body, _ := json.Marshal(map[string]string{"path": path, "content": "draft one"})
	if status, env := invoke(t, srv, "write-file", string(body)); status != http.StatusOK {
		t.Fatalf("write-file failed: %d %s", status, env.Error)
	}

	readBody, _ := json.Marshal(map[string]string{"path": path})
	_, env := invoke(t, srv, "read-file", string(readBody))
	var result struct {
		Content string `json:"content"`
	}
	json.Unmarshal(env.Result, &result)
	if result.Content != "draft one" {
		t.Fatalf("unexpected content %q", result.Content)
	}
}

func TestReadMissingFilePropagatesMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"path": filepath.Join(t.TempDir(), "ghost.txt")})
	status, env := invoke(t, srv, "read-file", string(body))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(env.Error, "no such file") {
		t.Fatalf("expected the original I/O error text, got %q", env.Error)
	}
}

func TestStoreOperations(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	invoke(t, srv, "store-set", `{"key":"editor.font","value":"mono"}`)
	invoke(t, srv, "store-set", `{"key":"editor.size","value":"14"}`)
	invoke(t, srv, "store-set", `{"key":"window.w","value":"800"}`)

	_, env := invoke(t, srv, "store-get", `{"key":"editor.font"}`)
	var got struct {
		Value string `json:"value"`
	}
	json.Unmarshal(env.Result, &got)
	if got.Value != "mono" {
		t.Fatalf("expected 'mono', got %q", got.Value)
	}

	_, env = invoke(t, srv, "store-list", `{"prefix":"editor."}`)
	var listed struct {
		Keys []string `json:"keys"`
	}
	json.Unmarshal(env.Result, &listed)
	if len(listed.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", listed.Keys)
	}

	invoke(t, srv, "store-delete", `{"key":"editor.font"}`)
	if status, _ := invoke(t, srv, "store-get", `{"key":"editor.font"}`); status != http.StatusInternalServerError {
		t.Fatalf("expected error status after delete, got %d", status)
	}

	invoke(t, srv, "store-clear", ``)
	_, env = invoke(t, srv, "store-list", ``)
	json.Unmarshal(env.Result, &listed)
	if len(listed.Keys) != 0 {
		t.Fatalf("expected empty store, got %v", listed.Keys)
	}
}

func TestSystemInfo(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	_, env := invoke(t, srv, "get-system-info", ``)
	var report struct {
		Platform string `json:"platform"`
		NumCPU   int    `json:"numCPU"`
	}
	json.Unmarshal(env.Result, &report)
	if report.Platform == "" || report.NumCPU < 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestShowOpenDialog(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	_, env := invoke(t, srv, "show-open-dialog", ``)
	var result dialogs.Result
	json.Unmarshal(env.Result, &result)
	if result.Canceled || result.Path != "/picked/file.txt" {
		t.Fatalf("unexpected dialog result %+v", result)
	}
}

func TestMenuEventsOverWebsocket(t *testing.T) {
	srv, hub := newTestServer(t)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial events: %v", err)
	}
	defer conn.Close()

	// Give the subscription a moment to register before publishing.
	time.Sleep(50 * time.Millisecond)
	hub.PublishMenuAction("open")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event bridge.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Event != "menu" || event.Action != "open" {
		t.Fatalf("unexpected event %+v", event)
	}
}
