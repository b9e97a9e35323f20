package bridge

import (
	"context"
	"encoding/json"
	"errors"

	"quillpad/internal/dialogs"
	"quillpad/internal/fsio"
	"quillpad/internal/recent"
	"quillpad/internal/store"
	"quillpad/internal/sysinfo"
)

var ErrInvalidPayload = errors.New("invalid request payload")

// Services are the collaborators the named requests delegate to.
type Services struct {
	Recent  *recent.Registry
	Files   *fsio.Service
	Store   *store.Store
	Dialogs *dialogs.Service

	// RecentChanged, when set, runs after every registration through the
	// bridge so the window host can rebuild its recent-files menu.
	RecentChanged func()
}

// RegisterCoreHandlers binds every named request of the application shell.
func RegisterCoreHandlers(d *Dispatcher, svc Services) {
	d.Register("get-recent-files", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Limit int `json:"limit"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, ErrInvalidPayload
			}
		}
		return svc.Recent.List(req.Limit), nil
	})

	d.Register("add-to-recent-files", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			FilePath string `json:"filePath"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.FilePath == "" {
			return nil, ErrInvalidPayload
		}
		svc.Recent.Register(req.FilePath)
		if svc.RecentChanged != nil {
			svc.RecentChanged()
		}
		return nil, nil
	})

	d.Register("read-file", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.Path == "" {
			return nil, ErrInvalidPayload
		}
		content, err := svc.Files.ReadFile(req.Path)
		if err != nil {
			return nil, err
		}
		return map[string]string{"content": content}, nil
	})

	d.Register("write-file", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.Path == "" {
			return nil, ErrInvalidPayload
		}
		return nil, svc.Files.WriteFile(req.Path, req.Content)
	})

	d.Register("get-system-info", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return sysinfo.Collect(), nil
	})

	d.Register("show-open-dialog", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return svc.Dialogs.ShowOpenDialog(ctx)
	})

	d.Register("show-save-dialog", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return svc.Dialogs.ShowSaveDialog(ctx)
	})

	registerStoreHandlers(d, svc.Store)
}

func registerStoreHandlers(d *Dispatcher, kv *store.Store) {
	d.Register("store-get", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.Key == "" {
			return nil, ErrInvalidPayload
		}
		value, err := kv.Get(req.Key)
		if err != nil {
			return nil, err
		}
		return map[string]string{"value": value}, nil
	})

	d.Register("store-set", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.Key == "" {
			return nil, ErrInvalidPayload
		}
		return nil, kv.Set(req.Key, req.Value)
	})

	d.Register("store-delete", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.Key == "" {
			return nil, ErrInvalidPayload
		}
		return nil, kv.Delete(req.Key)
	})

	d.Register("store-list", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req struct {
			Prefix string `json:"prefix"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, ErrInvalidPayload
			}
		}
		return map[string][]string{"keys": kv.List(req.Prefix)}, nil
	})

	d.Register("store-clear", func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		return nil, kv.Clear()
	})
}
