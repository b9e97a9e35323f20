package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// FynePresenter drives the real Fyne file pickers against the main window.
// All widget work is funnelled through fyne.Do because dialog requests
// arrive on non-UI goroutines.
type FynePresenter struct {
	window fyne.Window
}

func NewFynePresenter(window fyne.Window) *FynePresenter {
	return &FynePresenter{window: window}
}

func (p *FynePresenter) ShowOpen(done func(path string, err error)) {
	fyne.Do(func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				done("", err)
				return
			}
			if reader == nil {
				done("", nil)
				return
			}
			path := reader.URI().Path()
			reader.Close()
			done(path, nil)
		}, p.window)
	})
}

func (p *FynePresenter) ShowSave(done func(path string, err error)) {
	fyne.Do(func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				done("", err)
				return
			}
			if writer == nil {
				done("", nil)
				return
			}
			path := writer.URI().Path()
			writer.Close()
			done(path, nil)
		}, p.window)
	})
}
