package addin

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/zero-day-ai/notebridge/diag"
	"github.com/zero-day-ai/notebridge/hostinfo"
	"github.com/zero-day-ai/notebridge/hosttest"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/lifecycle"
	"github.com/zero-day-ai/notebridge/ribbon"
)

// AddInBDDTestContext holds the state of one scenario.
type AddInBDDTestContext struct {
	addin      *AddIn
	host       *hosttest.Host
	sink       *diag.MemorySink
	launcher   *hosttest.Launcher
	notifier   *hosttest.Notifier
	descriptor string
	tempDir    string
}

func (c *AddInBDDTestContext) resetContext() {
	c.addin = nil
	c.host = nil
	c.sink = nil
	c.launcher = nil
	c.notifier = nil
	c.descriptor = ""
}

func (c *AddInBDDTestContext) build(launcher launch.Launcher) error {
	builder, err := ribbon.NewBuilder(ribbon.Default())
	if err != nil {
		return err
	}
	a, err := New(Config{
		Identity: DefaultIdentity(),
		Ribbon:   builder,
		Launcher: launcher,
		Request:  launch.Request{Target: filepath.Join(c.tempDir, "run_onenote_export.bat")},
		Notifier: c.notifier,
		Recorder: diag.NewRecorder(diag.NewLineHandler(c.sink, nil), nil),
		HostInfo: func(ctx context.Context) (hostinfo.Info, error) {
			return hostinfo.Info{PID: 1, Name: "ONENOTE.EXE"}, nil
		},
	})
	if err != nil {
		return err
	}
	c.addin = a
	c.host = hosttest.NewHost(a.Dispatch())
	return nil
}

func (c *AddInBDDTestContext) anAddInWhoseExporterTargetExists() error {
	c.sink = diag.NewMemorySink()
	c.launcher = hosttest.NewLauncher()
	c.notifier = hosttest.NewNotifier()
	return c.build(c.launcher)
}

func (c *AddInBDDTestContext) theExporterTargetDoesNotExist() error {
	return c.build(launch.NewShellLauncher())
}

func (c *AddInBDDTestContext) theDiagnosticTargetIsUnwritable() error {
	c.sink.FailWith(errors.New("access denied"))
	return nil
}

func (c *AddInBDDTestContext) theHostConnectsWithMode(name string) error {
	mode, err := lifecycle.ParseConnectMode(name)
	if err != nil {
		return err
	}
	return c.host.Connect(context.Background(), int32(mode))
}

func (c *AddInBDDTestContext) theHostDisconnectsWithMode(name string) error {
	mode, err := lifecycle.ParseDisconnectMode(name)
	if err != nil {
		return err
	}
	return c.host.Disconnect(context.Background(), int32(mode))
}

func (c *AddInBDDTestContext) theHostSignals(event string) error {
	return c.host.Notify(context.Background(), event)
}

func (c *AddInBDDTestContext) theHostRequestsTheDescriptorForRibbon(ribbonID string) error {
	text, err := c.host.LoadUI(context.Background(), ribbonID)
	if err != nil {
		return err
	}
	c.descriptor = text
	return nil
}

func (c *AddInBDDTestContext) theUserActivatesControl(id string) error {
	return c.host.Click(context.Background(), OpExportToObsidian, RibbonControl{ControlID: id})
}

func (c *AddInBDDTestContext) exporterLaunchesShouldHaveBeenRequested(n int) error {
	if c.launcher == nil {
		return errors.New("no recording launcher in this scenario")
	}
	if got := c.launcher.Count(); got != n {
		return fmt.Errorf("expected %d launches, got %d", n, got)
	}
	return nil
}

func (c *AddInBDDTestContext) noFailureNotificationShouldHaveBeenShown() error {
	if msgs := c.notifier.Messages(); len(msgs) != 0 {
		return fmt.Errorf("expected no notification, got %v", msgs)
	}
	return nil
}

func (c *AddInBDDTestContext) aFailureNotificationShouldHaveBeenShown() error {
	msgs := c.notifier.Messages()
	if len(msgs) != 1 {
		return fmt.Errorf("expected one notification, got %d", len(msgs))
	}
	if !strings.HasPrefix(msgs[0].Text, "Failed to launch the Obsidian exporter:\n\n") {
		return fmt.Errorf("unexpected notification text %q", msgs[0].Text)
	}
	return nil
}

func (c *AddInBDDTestContext) diagnosticRecordsShouldHaveBeenWritten(n int) error {
	if got := c.sink.Len(); got != n {
		return fmt.Errorf("expected %d records, got %d: %v", n, got, c.sink.Records())
	}
	return nil
}

func (c *AddInBDDTestContext) theLastDiagnosticRecordShouldContain(s string) error {
	records := c.sink.Records()
	if len(records) == 0 {
		return errors.New("no records written")
	}
	last := records[len(records)-1]
	if !strings.Contains(last, s) {
		return fmt.Errorf("record %q does not contain %q", last, s)
	}
	return nil
}

func (c *AddInBDDTestContext) theAddInShouldBe(state string) error {
	if got := c.addin.State().String(); got != state {
		return fmt.Errorf("expected state %s, got %s", state, got)
	}
	return nil
}

func (c *AddInBDDTestContext) theDescriptorShouldBeValid() error {
	doc, err := ribbon.Parse(c.descriptor)
	if err != nil {
		return err
	}
	return ribbon.Validate(doc, nil)
}

func (c *AddInBDDTestContext) theDescriptorsOnActionShouldNameAnExposedOperation() error {
	onAction, err := hosttest.OnAction(c.descriptor)
	if err != nil {
		return err
	}
	if !c.addin.Dispatch().Has(onAction) {
		return fmt.Errorf("onAction %q is not exposed; exposed: %v", onAction, c.addin.Dispatch().Names())
	}
	return nil
}

// InitializeAddInScenario registers the step definitions.
func InitializeAddInScenario(t *testing.T) func(ctx *godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		testCtx := &AddInBDDTestContext{}

		ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
			testCtx.resetContext()
			testCtx.tempDir = t.TempDir()
			return ctx, nil
		})

		ctx.Step(`^an add-in whose exporter target exists$`, testCtx.anAddInWhoseExporterTargetExists)
		ctx.Step(`^the exporter target does not exist$`, testCtx.theExporterTargetDoesNotExist)
		ctx.Step(`^the diagnostic target is unwritable$`, testCtx.theDiagnosticTargetIsUnwritable)

		ctx.Step(`^the host connects with mode "([^"]*)"$`, testCtx.theHostConnectsWithMode)
		ctx.Step(`^the host disconnects with mode "([^"]*)"$`, testCtx.theHostDisconnectsWithMode)
		ctx.Step(`^the host signals "([^"]*)"$`, testCtx.theHostSignals)
		ctx.Step(`^the host requests the descriptor for ribbon "([^"]*)"$`, testCtx.theHostRequestsTheDescriptorForRibbon)
		ctx.Step(`^the user activates control "([^"]*)"$`, testCtx.theUserActivatesControl)

		ctx.Step(`^(\d+) exporter launch(?:es)? should have been requested$`, testCtx.exporterLaunchesShouldHaveBeenRequested)
		ctx.Step(`^no failure notification should have been shown$`, testCtx.noFailureNotificationShouldHaveBeenShown)
		ctx.Step(`^a failure notification should have been shown$`, testCtx.aFailureNotificationShouldHaveBeenShown)
		ctx.Step(`^(\d+) diagnostic records? should have been written$`, testCtx.diagnosticRecordsShouldHaveBeenWritten)
		ctx.Step(`^the last diagnostic record should contain "([^"]*)"$`, testCtx.theLastDiagnosticRecordShouldContain)
		ctx.Step(`^the add-in should be "([^"]*)"$`, testCtx.theAddInShouldBe)
		ctx.Step(`^the descriptor should be valid$`, testCtx.theDescriptorShouldBeValid)
		ctx.Step(`^the descriptor's onAction should name an exposed operation$`, testCtx.theDescriptorsOnActionShouldNameAnExposedOperation)
	}
}

// TestAddInFeatures runs the BDD scenarios for the add-in.
func TestAddInFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeAddInScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/addin.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
