package cmd

import (
	"github.com/srediag/shmopen/adapter"
	"github.com/srediag/shmopen/pkg/audit"
	"github.com/srediag/shmopen/pkg/shm"
)

// newNamespace returns a Namespace whose audit trail is logged when the
// returned finish func runs.
func newNamespace(gs *globalState) (*shm.Namespace, func(), error) {
	trail := audit.NewRecorder(0)
	ns, err := shm.NewNamespace(
		shm.WithLogger(gs.logger),
		shm.WithAuditor(trail),
		shm.WithWorkers(gs.cfg.Workers),
	)
	if err != nil {
		trail.Close()
		return nil, nil, err
	}
	sink := &adapter.AuditLogSink{Source: trail, Logger: gs.logger}
	finish := func() {
		if err := ns.Close(); err != nil {
			gs.logger.WithError(err).Warn("namespace close")
		}
		sink.Flush()
		trail.Close()
	}
	return ns, finish, nil
}
