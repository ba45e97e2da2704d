// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can assert exact calls
// (and, just as important, the absence of calls). Service mocks use function
// fields with default values.
//
// Usage:
//
//	import "github.com/phrazzld/finance-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    entries := new(mocks.MockEntryStore)
//	    entries.On("Save", mock.Anything, mock.Anything).Return(saved, nil)
//
//	    // Use the mock in your test...
//
//	    entries.AssertExpectations(t)
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Add a compile-time assertion that the mock implements the interface
package mocks
