// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, their tasks, the task status
// enumeration and the error kinds every layer above reports in. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
