// Package service contains the application-specific use cases. TaskService
// orchestrates task creation, listing, status changes and deletion on top of
// the repository interfaces in internal/store, scoping every call to the
// owner that made it.
//
// Expected conditions are reported with the domain error kinds
// (domain.ErrValidation, ErrTaskNotFound). Unexpected failures are wrapped
// in TaskServiceError, which matches domain.ErrPersistence.
package service
