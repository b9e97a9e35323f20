// Package dialogs exposes the native file pickers as synchronous
// request/response operations. The native surface is hidden behind the
// Presenter interface so the request layer can be tested without a display.
package dialogs

import (
	"context"

	"quillpad/internal/logger"
)

// Result of a dialog request. Canceled is true when the user dismissed the
// picker without choosing a file.
type Result struct {
	Path     string `json:"path"`
	Canceled bool   `json:"canceled"`
}

// Presenter shows a native file picker and invokes done exactly once, from
// any goroutine. A dismissal is reported as ("", nil).
type Presenter interface {
	ShowOpen(done func(path string, err error))
	ShowSave(done func(path string, err error))
}

type Service struct {
	presenter Presenter
	log       logger.Logger
}

func NewService(presenter Presenter, log logger.Logger) *Service {
	return &Service{presenter: presenter, log: log}
}

// ShowOpenDialog blocks until the user picks a file, cancels the dialog, or
// ctx is done. Dialog errors are returned unmodified.
func (s *Service) ShowOpenDialog(ctx context.Context) (Result, error) {
	return s.await(ctx, s.presenter.ShowOpen)
}

// ShowSaveDialog blocks until the user picks a destination, cancels the
// dialog, or ctx is done.
func (s *Service) ShowSaveDialog(ctx context.Context) (Result, error) {
	return s.await(ctx, s.presenter.ShowSave)
}

type dialogOutcome struct {
	path string
	err  error
}

func (s *Service) await(ctx context.Context, show func(func(string, error))) (Result, error) {
	// Buffered so a late callback after ctx cancellation cannot leak a
	// goroutine.
	outcome := make(chan dialogOutcome, 1)
	show(func(path string, err error) {
		outcome <- dialogOutcome{path: path, err: err}
	})

	select {
	case o := <-outcome:
		if o.err != nil {
			s.log.Error("Dialogs", o.err, nil)
			return Result{}, o.err
		}
		if o.path == "" {
			s.log.Debug("Dialogs", "dialog dismissed", nil)
			return Result{Canceled: true}, nil
		}
		s.log.Debug("Dialogs", "file chosen", map[string]interface{}{"path": o.path})
		return Result{Path: o.path}, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
