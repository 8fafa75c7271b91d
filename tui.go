package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var tuiLogsView *tview.TextView
var tuiPanelView *tview.TextView
var tuiApp *tview.Application

func tuiWritePanel(text string) {
	tuiApp.QueueUpdateDraw(func() {
		tuiPanelView.SetText(text)
	})
}

// tuiInit builds the log pane, the market/account pane and the command line.
// Entered commands are handed to onInput on their own goroutine.
func tuiInit(onInput func(string)) {
	tuiApp = tview.NewApplication()

	tuiLogsView = tview.NewTextView().SetChangedFunc(func() { tuiApp.Draw(); tuiLogsView.ScrollToEnd() }).
		SetRegions(true).SetTextAlign(tview.AlignLeft).SetDynamicColors(true).SetScrollable(true)

	tuiLogsView.
		SetBorder(true).
		SetTitle("Logs")

	tuiPanelView = tview.NewTextView().
		SetRegions(true).SetTextAlign(tview.AlignLeft).SetDynamicColors(true)

	tuiPanelView.
		SetBorder(true).
		SetTitle("Bithumb")

	inputField := tview.NewInputField()
	inputField.
		SetLabel("> ").
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				go onInput(inputField.GetText())
				inputField.SetText("")
			}
		}).
		SetFieldBackgroundColor(tview.Styles.PrimitiveBackgroundColor)

	grid := tview.NewGrid().
		SetRows(0, 1).
		SetColumns(0, 0).
		SetBorders(true)

	grid.AddItem(tuiLogsView, 0, 0, 1, 1, 0, 0, false).
		AddItem(tuiPanelView, 0, 1, 1, 1, 0, 0, false).
		AddItem(inputField, 1, 0, 1, 2, 0, 0, true)

	tuiApp.SetRoot(grid, true).SetFocus(inputField)
}

func tuiRun() error {
	return tuiApp.Run()
}

func tuiClose() {
	tuiApp.Stop()
}
