package main

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	guiAppID       = "io.filelisting.catalog"
	guiWindowTitle = "文件目录文件生成器"
	guiNameLabel   = "目录名称"
)

// runGUI opens the launcher window and blocks until it is closed.
func runGUI(l *launcher) error {
	if _, err := ensureTargets(l.targets); err != nil {
		return err
	}

	a := app.NewWithID(guiAppID)
	w := a.NewWindow(guiWindowTitle)
	w.SetMaster()

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("file_catalog")
	nameRow := container.NewHBox(
		widget.NewLabel(guiNameLabel),
		container.NewGridWrap(fyne.NewSize(220, nameEntry.MinSize().Height), nameEntry),
	)

	clearBtn := widget.NewButton("Clear targets folder", func() {
		onClear(l, w)
	})
	generateBtn := widget.NewButton("Generate catalog", func() {
		// the name is read here and handed down; nothing else holds it
		onGenerate(l, w, nameEntry.Text)
	})
	clearBtn.Importance = widget.HighImportance
	generateBtn.Importance = widget.HighImportance

	footer := widget.NewLabel(fmt.Sprintf("targets: %s", l.targets))
	footer.Truncation = fyne.TextTruncateEllipsis

	body := container.NewVBox(
		container.NewCenter(nameRow),
		clearBtn,
		generateBtn,
	)
	w.SetContent(container.NewBorder(nil, footer, nil, nil, container.NewPadded(body)))
	w.Resize(fyne.NewSize(420, 230))
	w.SetFixedSize(true)

	logger.Info().Str("targets", l.targets).Msg("launcher window started")
	w.ShowAndRun()
	return nil
}

func onClear(l *launcher, w fyne.Window) {
	created, err := ensureTargets(l.targets)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}
	if created {
		dialog.ShowInformation("Clear", "targets folder was missing and has been created.", w)
		return
	}

	dialog.ShowConfirm("Confirm Clear",
		"This will permanently delete ALL files and folders inside targets. Continue?",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if _, err := clearTargets(l.targets); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Clear", "targets folder has been cleared.", w)
		},
		w,
	)
}

func onGenerate(l *launcher, w fyne.Window, name string) {
	out, err := l.generate(name)
	if err != nil {
		var genErr *GenerateError
		if errors.As(err, &genErr) {
			logger.Error().Err(genErr.Err).Msg("catalog generation failed")
			dialog.ShowError(genErr, w)
			return
		}
		dialog.ShowError(err, w)
		return
	}
	dialog.ShowInformation("Done", out, w)
}
