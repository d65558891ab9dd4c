//go:build !windows

package notify

import "os"

// NewDesktop returns the platform's interactive notifier. Without a message
// box API, notifications go to stderr.
func NewDesktop() Notifier {
	return NewWriterNotifier(os.Stderr)
}
