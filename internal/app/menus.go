package app

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (a *Application) setupMenus() {
	a.recentMenu = fyne.NewMenu("Open Recent")
	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = a.recentMenu

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", a.handleOpen),
		recentItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save...", a.handleSave),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.shutdownMgr.Shutdown()
			a.fyneApp.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.hub.PublishMenuAction("undo")
			a.editor.Undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.hub.PublishMenuAction("redo")
			a.editor.Redo()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))
}

// handleOpen runs on the UI thread; the blocking dialog wait moves to a
// goroutine so the event loop stays responsive.
func (a *Application) handleOpen() {
	a.hub.PublishMenuAction("open")

	go func() {
		result, err := a.pickers.ShowOpenDialog(a.shutdownMgr.Context())
		if err != nil {
			a.showError("Open Failed", err)
			return
		}
		if result.Canceled {
			return
		}
		a.openPath(result.Path)
	}()
}

func (a *Application) openPath(path string) {
	content, err := a.files.ReadFile(path)
	if err != nil {
		a.showError("Open Failed", err)
		return
	}

	a.registry.Register(path)

	fyne.Do(func() {
		a.currentPath = path
		a.editor.SetText(content)
		a.editor.SetStatus("Opened " + filepath.Base(path))
		a.refreshRecentMenu()
	})
}

func (a *Application) handleSave() {
	a.hub.PublishMenuAction("save")

	// Snapshot the text while still on the UI thread.
	content := a.editor.Text()

	go func() {
		result, err := a.pickers.ShowSaveDialog(a.shutdownMgr.Context())
		if err != nil {
			a.showError("Save Failed", err)
			return
		}
		if result.Canceled {
			return
		}

		if err := a.files.WriteFile(result.Path, content); err != nil {
			a.showError("Save Failed", err)
			return
		}

		a.registry.Register(result.Path)

		fyne.Do(func() {
			a.currentPath = result.Path
			a.editor.SetStatus("Saved " + filepath.Base(result.Path))
			a.refreshRecentMenu()
		})
	}()
}

// refreshRecentMenu rebuilds the Open Recent submenu from the registry.
// Caller must be on the UI thread.
func (a *Application) refreshRecentMenu() {
	entries := a.registry.List(0)

	items := make([]*fyne.MenuItem, 0, len(entries))
	for _, entry := range entries {
		path := entry.Path
		items = append(items, fyne.NewMenuItem(entry.Name, func() {
			a.hub.PublishMenuAction("open")
			go a.openPath(path)
		}))
	}
	a.recentMenu.Items = items
	a.window.MainMenu().Refresh()
}

func (a *Application) showError(title string, err error) {
	a.log.Error("Application", err, map[string]interface{}{"surface": title})
	fyne.Do(func() {
		dialog.ShowError(err, a.window)
	})
}
