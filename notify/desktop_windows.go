//go:build windows

package notify

import (
	"golang.org/x/sys/windows"
)

// Desktop shows a modal error message box.
type Desktop struct{}

// NewDesktop returns the platform's interactive notifier.
func NewDesktop() Notifier {
	return Desktop{}
}

// Notify blocks until the user dismisses the message box.
func (Desktop) Notify(msg Message) error {
	text, err := windows.UTF16PtrFromString(msg.Text)
	if err != nil {
		return err
	}
	title, err := windows.UTF16PtrFromString(msg.Title)
	if err != nil {
		return err
	}
	_, err = windows.MessageBox(0, text, title, windows.MB_OK|windows.MB_ICONERROR|windows.MB_SETFOREGROUND)
	return err
}
