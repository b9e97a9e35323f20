// Package gui holds the editor view: a multiline text entry above a status
// bar. Rendering beyond this minimal surface belongs to Fyne.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Editor struct {
	entry   *widget.Entry
	status  *widget.Label
	content *fyne.Container
}

func NewEditor() *Editor {
	entry := widget.NewMultiLineEntry()
	entry.Wrapping = fyne.TextWrapWord
	entry.SetPlaceHolder("Start typing, or open a file from the File menu.")

	status := widget.NewLabel("Ready")

	return &Editor{
		entry:   entry,
		status:  status,
		content: container.NewBorder(nil, status, nil, nil, entry),
	}
}

// Canvas returns the root object for the window content.
func (e *Editor) Canvas() fyne.CanvasObject {
	return e.content
}

func (e *Editor) SetText(text string) {
	e.entry.SetText(text)
}

func (e *Editor) Text() string {
	return e.entry.Text
}

func (e *Editor) SetStatus(message string) {
	e.status.SetText(message)
}

func (e *Editor) Undo() {
	e.entry.TypedShortcut(&fyne.ShortcutUndo{})
}

func (e *Editor) Redo() {
	e.entry.TypedShortcut(&fyne.ShortcutRedo{})
}

func (e *Editor) FocusOn(window fyne.Window) {
	window.Canvas().Focus(e.entry)
}
