// Package hosttest provides fakes and a host driver for testing add-ins
// without a real host application.
package hosttest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zero-day-ai/notebridge/dispatch"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/notify"
	"github.com/zero-day-ai/notebridge/ribbon"
)

// Launcher records launch requests instead of starting programs. When Err is
// set every launch fails with it.
type Launcher struct {
	mu       sync.Mutex
	requests []launch.Request
	nextPID  int

	Err error
}

// NewLauncher returns a recording launcher.
func NewLauncher() *Launcher {
	return &Launcher{nextPID: 1000}
}

// FailingLauncher returns a launcher whose launches fail with err.
func FailingLauncher(err error) *Launcher {
	l := NewLauncher()
	l.Err = err
	return l
}

// Launch records req and returns a handle with a fresh PID.
func (l *Launcher) Launch(ctx context.Context, req launch.Request) (*launch.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, req)
	if l.Err != nil {
		return nil, l.Err
	}
	l.nextPID++
	return &launch.Handle{Target: req.Target, PID: l.nextPID, StartedAt: time.Now()}, nil
}

// Requests returns a copy of the recorded requests.
func (l *Launcher) Requests() []launch.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]launch.Request(nil), l.requests...)
}

// Count returns the number of launch attempts.
func (l *Launcher) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

// Notifier records notifications.
type Notifier struct {
	mu       sync.Mutex
	messages []notify.Message

	Err error
}

// NewNotifier returns a recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify records msg.
func (n *Notifier) Notify(msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.Err
}

// Messages returns a copy of the recorded messages.
func (n *Notifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

// Host drives an add-in the way the host application does: every operation
// is resolved by name through GetIDsOfNames and called through Invoke.
type Host struct {
	table *dispatch.Table

	// App is passed as the application object on connect.
	App any
}

// NewHost returns a host driving table.
func NewHost(table *dispatch.Table) *Host {
	return &Host{table: table, App: &Application{Name: "OneNote"}}
}

// Application is a stand-in for the host's application object.
type Application struct {
	Name string
}

// Call resolves name and invokes it with args.
func (h *Host) Call(ctx context.Context, name string, args ...any) (any, error) {
	ids, err := h.table.GetIDsOfNames(name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	return h.table.Invoke(ctx, ids[0], args...)
}

// Connect delivers OnConnection with the given connect mode.
func (h *Host) Connect(ctx context.Context, mode int32) error {
	_, err := h.Call(ctx, "OnConnection", h.App, mode, nil, &[]any{})
	return err
}

// Disconnect delivers OnDisconnection with the given disconnect mode.
func (h *Host) Disconnect(ctx context.Context, mode int32) error {
	_, err := h.Call(ctx, "OnDisconnection", mode, &[]any{})
	return err
}

// Notify delivers one of the notification events: OnAddInsUpdate,
// OnStartupComplete or OnBeginShutdown.
func (h *Host) Notify(ctx context.Context, event string) error {
	_, err := h.Call(ctx, event, &[]any{})
	return err
}

// LoadUI asks for the ribbon descriptor.
func (h *Host) LoadUI(ctx context.Context, ribbonID string) (string, error) {
	out, err := h.Call(ctx, "GetCustomUI", ribbonID)
	if err != nil {
		return "", err
	}
	text, ok := out.(string)
	if !ok {
		return "", errors.New("GetCustomUI did not return a string")
	}
	return text, nil
}

// Click invokes the activation callback named by onAction with control.
func (h *Host) Click(ctx context.Context, onAction string, control any) error {
	_, err := h.Call(ctx, onAction, control)
	return err
}

// OnAction returns the onAction callback name of the descriptor's button.
func OnAction(descriptor string) (string, error) {
	doc, err := ribbon.Parse(descriptor)
	if err != nil {
		return "", err
	}
	for _, tab := range doc.Ribbon.Tabs {
		for _, group := range tab.Groups {
			for _, button := range group.Buttons {
				return button.OnAction, nil
			}
		}
	}
	return "", errors.New("descriptor has no button")
}

// Session runs a full host session against the add-in. It connects, signals
// startup complete and loads the descriptor. It then clicks the descriptor's
// button the given number of times, signals shutdown and disconnects. It
// returns the descriptor.
func (h *Host) Session(ctx context.Context, clicks int, control any) (string, error) {
	if err := h.Connect(ctx, 1); err != nil {
		return "", err
	}
	if err := h.Notify(ctx, "OnStartupComplete"); err != nil {
		return "", err
	}
	ui, err := h.LoadUI(ctx, "Microsoft.OneNote.Notebook")
	if err != nil {
		return "", err
	}
	onAction, err := OnAction(ui)
	if err != nil {
		return "", err
	}
	for i := 0; i < clicks; i++ {
		if err := h.Click(ctx, onAction, control); err != nil {
			return "", err
		}
	}
	if err := h.Notify(ctx, "OnBeginShutdown"); err != nil {
		return "", err
	}
	if err := h.Disconnect(ctx, 0); err != nil {
		return "", err
	}
	return ui, nil
}
