package control

import (
	"fmt"
	"time"
)

type AlertType string

const (
	AlertWarning    AlertType = "warning"
	AlertCritical   AlertType = "critical"
	AlertBankruptcy AlertType = "bankruptcy"
)

type Alert struct {
	Type     AlertType `json:"type"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
	Day      int       `json:"day"`
	Resolved bool      `json:"resolved"`
}

// AlertLog is an append-and-resolve list of alerts. Deduplication is by
// literal message text among unresolved entries: two alerts whose messages
// differ only in an embedded number are distinct on purpose.
type AlertLog struct {
	alerts []Alert
}

// Add appends the alert unless an unresolved alert with the identical
// message already exists. Reports whether the alert was added.
func (a *AlertLog) Add(alert Alert) bool {
	for _, existing := range a.alerts {
		if !existing.Resolved && existing.Message == alert.Message {
			return false
		}
	}
	a.alerts = append(a.alerts, alert)
	return true
}

// Resolve flips the resolved flag of the alert at the given position.
// Positions are stable across Add and Resolve; only ClearOld compacts the
// list.
func (a *AlertLog) Resolve(index int) error {
	if index < 0 || index >= len(a.alerts) {
		return fmt.Errorf("resolve alert: index %d out of range (have %d alerts)", index, len(a.alerts))
	}
	a.alerts[index].Resolved = true
	return nil
}

// ClearOld removes resolved alerts raised before the given day. Unresolved
// alerts are retained regardless of age.
func (a *AlertLog) ClearOld(beforeDay int) {
	kept := a.alerts[:0]
	for _, alert := range a.alerts {
		if alert.Resolved && alert.Day < beforeDay {
			continue
		}
		kept = append(kept, alert)
	}
	a.alerts = kept
}

// All returns a copy of the alert list in insertion order.
func (a *AlertLog) All() []Alert {
	out := make([]Alert, len(a.alerts))
	copy(out, a.alerts)
	return out
}

// Unresolved returns the alerts not yet resolved, in insertion order.
func (a *AlertLog) Unresolved() []Alert {
	var out []Alert
	for _, alert := range a.alerts {
		if !alert.Resolved {
			out = append(out, alert)
		}
	}
	return out
}
