// Package addin implements the host-facing add-in: five lifecycle
// operations, the ribbon descriptor operation and the activation callback,
// all resolvable by name through a dispatch table.
//
// # Contract with the host
//
// The host loads one AddIn instance and calls, by name:
//
//	OnConnection(Application, ConnectMode, AddInInst, custom)
//	OnStartupComplete(custom)
//	GetCustomUI(RibbonID) string
//	ExportToObsidian(control)      // any number of times
//	OnAddInsUpdate(custom)         // whenever the add-in list changes
//	OnBeginShutdown(custom)
//	OnDisconnection(RemoveMode, custom)
//
// None of these operations ever reports a failure to the host. Each one
// appends exactly one record to the diagnostic log, with its outcome folded
// into that record. A launch failure during activation is shown to the user
// and otherwise swallowed.
//
// # Usage
//
//	a, err := addin.New(addin.Config{
//	    Identity: addin.DefaultIdentity(),
//	    Ribbon:   builder,
//	    Launcher: launch.NewShellLauncher(),
//	    Request:  launch.Request{Target: target},
//	    Notifier: notify.NewDesktop(),
//	    Recorder: diag.NewFileRecorder(logPath, logger),
//	})
//	if err != nil {
//	    return err
//	}
//	table := a.Dispatch() // hand to the host bridge
//
// The typed methods (OnConnection, GetCustomUI, ...) can also be called
// directly; they behave exactly like the dispatched operations.
package addin
