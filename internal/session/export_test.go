package session

import "time"

// SetNowFunc replaces the manager's clock in tests.
func (m *Manager) SetNowFunc(now func() time.Time) {
	m.now = now
}
