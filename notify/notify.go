// Package notify shows failure notifications to the interactive user.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Message is a user-visible notification.
type Message struct {
	Title string
	Text  string
}

// Notifier shows a message to the user. Implementations may block until the
// user dismisses it.
type Notifier interface {
	Notify(msg Message) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg Message) error

// Notify calls f.
func (f NotifierFunc) Notify(msg Message) error {
	return f(msg)
}

// DefaultTitle is the title of launch failure notifications.
const DefaultTitle = "OneNote Obsidian Export"

// LaunchFailure builds the notification shown when the exporter cannot be
// started.
func LaunchFailure(title string, err error) Message {
	if title == "" {
		title = DefaultTitle
	}
	return Message{
		Title: title,
		Text:  "Failed to launch the Obsidian exporter:\n\n" + err.Error(),
	}
}

// WriterNotifier writes notifications to a stream, for hosts without a
// desktop.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a notifier that writes to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify writes "title: text" followed by a newline.
func (n *WriterNotifier) Notify(msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "%s: %s\n", msg.Title, msg.Text)
	return err
}
