// Package mocks provides centralized mock implementations for testing.
//
// Most mocks use function fields: set the field for the method under test and
// leave the rest nil to get the default behaviour. MockTaskStore is built on
// testify/mock for tests that want call expectations.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Keep the package free of imports from internal/service so that service
//     packages can use it from their own tests
package mocks
