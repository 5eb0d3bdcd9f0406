// Package events carries task lifecycle notifications from the service layer
// to any interested handlers.
//
// The primary components are:
// - TaskEvent: a created, status-changed or deleted notification
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - AuditLogHandler: writes each event to the structured log
package events
