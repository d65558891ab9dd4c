// Package health reports whether the add-in can do its job: whether the
// launch target is in place and whether diagnostics can be written.
//
// Checks return a Status; Combine folds named checks into one, worst first.
//
//	overall := health.Combine(
//	    health.Named("launch_target", health.TargetCheck(cfg.Launch.Target)),
//	    health.Named("diagnostics", health.LogTargetCheck(cfg.Diagnostics.LogPath)),
//	)
//	if !overall.IsHealthy() {
//	    log.Println(overall.Message)
//	}
package health
