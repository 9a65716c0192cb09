package scheduler

// DefaultSnapshotKeep is how many snapshots are retained after pruning
const DefaultSnapshotKeep = 48

const (
	LogMsgJobScheduled  = "Job scheduled"
	LogMsgTickSkipped   = "Worker queue full, scheduled tick skipped"
	LogMsgSnapshotSaved = "Raffle snapshot saved"
	LogMsgSnapshotPrune = "Old raffle snapshots pruned"
)

const (
	ErrContextEncodeSnapshot = "failed to encode snapshot"
	ErrContextSaveSnapshot   = "failed to save snapshot"
	ErrContextPruneSnapshots = "failed to prune snapshots"
)
