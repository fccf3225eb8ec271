package dataset

import (
	"time"

	"studentinsight.dev/dashboard/internal/students"
)

// MockAddRecord appends a raw record to the cache, marking it loaded.
func (m *Manager) MockAddRecord(rec students.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]students.RawRecord, len(m.records), len(m.records)+1)
	copy(records, m.records)
	m.records = append(records, rec)
	m.loaded = true
	m.lastUpdated = time.Now()
}

// MockAddStudent appends a single-row student with one mark per subject.
func (m *Manager) MockAddStudent(userID, physics, chemistry, mathematics string) {
	m.MockAddRecord(students.RawRecord{
		UserID: userID,
		Marks: [len(students.Subjects)]students.Cell{
			students.Value(physics),
			students.Value(chemistry),
			students.Value(mathematics),
		},
	})
}
