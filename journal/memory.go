package journal

// Memory keeps every record in slices. Used by tests and by callers that
// want to inspect a run's event stream without touching disk.
type Memory struct {
	Snapshots []SnapshotRecord
	Alerts    []AlertRecord
	Actions   []ActionRecord
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) RecordSnapshot(r SnapshotRecord) error {
	m.Snapshots = append(m.Snapshots, r)
	return nil
}

func (m *Memory) RecordAlert(r AlertRecord) error {
	m.Alerts = append(m.Alerts, r)
	return nil
}

func (m *Memory) RecordAction(r ActionRecord) error {
	m.Actions = append(m.Actions, r)
	return nil
}

func (m *Memory) Close() error { return nil }
