package builder

import (
	"github.com/frherrer/docsuite/internal/domain"
)

// modeReconciler keeps the execution mode consistent across all files of
// one build. It must see files in traversal order so the first declared
// mode wins.
type modeReconciler struct {
	running domain.ExecutionMode
	forced  bool
}

func newModeReconciler(mode domain.ExecutionMode) *modeReconciler {
	return &modeReconciler{running: mode, forced: mode.IsSet()}
}

// reconcile validates the mode declared by a parsed file suite, or
// overwrites it when the mode was given explicitly.
func (r *modeReconciler) reconcile(suite *domain.TestSuite) error {
	switch {
	case r.forced:
		suite.Mode = r.running
	case !suite.Mode.IsSet():
	case !r.running.IsSet():
		r.running = suite.Mode
	case r.running != suite.Mode:
		return domain.Errorf(domain.KindMode,
			"Conflicting execution modes. File has %s but files parsed earlier have %s. "+
				"Fix headers or use the '--mode' option to set the execution mode explicitly.",
			suite.Mode, r.running)
	}
	return nil
}

// mode returns the mode of the whole build.
func (r *modeReconciler) mode() domain.ExecutionMode {
	return r.running
}
