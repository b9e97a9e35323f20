// Package app wires the window/menu host to the service layer and owns the
// application lifecycle.
package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"quillpad/internal/bridge"
	"quillpad/internal/config"
	"quillpad/internal/dialogs"
	"quillpad/internal/fsio"
	"quillpad/internal/gui"
	"quillpad/internal/logger"
	"quillpad/internal/recent"
	"quillpad/internal/shutdown"
	"quillpad/internal/store"
)

const (
	AppName    = "Quillpad"
	AppID      = "io.quillpad.app"
	AppVersion = "1.0.0"

	windowWidth  = 1000
	windowHeight = 700
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	log     logger.Logger
	cfg     config.Config

	editor   *gui.Editor
	registry *recent.Registry
	files    *fsio.Service
	kv       *store.Store
	pickers  *dialogs.Service

	dispatcher  *bridge.Dispatcher
	hub         *bridge.Hub
	server      *bridge.Server
	shutdownMgr *shutdown.Manager

	// currentPath is the file backing the editor; touched on the UI
	// thread only.
	currentPath string
	recentMenu  *fyne.Menu
}

func New(cfg config.Config, log logger.Logger) (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	kv, err := store.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open persistent store: %w", err)
	}

	registry := recent.NewRegistry()
	files := fsio.NewService(log)
	pickers := dialogs.NewService(dialogs.NewFynePresenter(window), log)

	dispatcher := bridge.NewDispatcher(log)
	hub := bridge.NewHub(log)
	server := bridge.NewServer(cfg.BridgeAddr, dispatcher, hub, log)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("store", kv)
	shutdownMgr.Register("events", hub)
	shutdownMgr.Register("bridge", server)

	a := &Application{
		fyneApp:     fyneApp,
		window:      window,
		log:         log,
		cfg:         cfg,
		editor:      gui.NewEditor(),
		registry:    registry,
		files:       files,
		kv:          kv,
		pickers:     pickers,
		dispatcher:  dispatcher,
		hub:         hub,
		server:      server,
		shutdownMgr: shutdownMgr,
	}

	a.setupMenus()
	window.SetContent(a.editor.Canvas())

	// Handlers are registered after the menus exist so bridge-side
	// registrations can rebuild the recent-files submenu.
	bridge.RegisterCoreHandlers(dispatcher, bridge.Services{
		Recent:  registry,
		Files:   files,
		Store:   kv,
		Dialogs: pickers,
		RecentChanged: func() {
			fyne.Do(a.refreshRecentMenu)
		},
	})

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":     AppVersion,
		"bridge_addr": cfg.BridgeAddr,
		"store_path":  cfg.StorePath(),
		"requests":    len(dispatcher.Names()),
	})

	return a, nil
}

// Run starts the bridge server and the Fyne event loop. Blocks until the
// window closes or a shutdown signal arrives.
func (a *Application) Run() error {
	if err := a.server.Start(); err != nil {
		return fmt.Errorf("start bridge server: %w", err)
	}
	a.shutdownMgr.Listen()

	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.shutdownMgr.Shutdown()
		a.window.Close()
	})

	a.window.Show()
	a.editor.FocusOn(a.window)

	a.log.Info("Application", "window displayed", nil)
	a.fyneApp.Run()

	// Window closed without the intercept firing (e.g. Quit menu).
	a.shutdownMgr.Shutdown()
	return nil
}
