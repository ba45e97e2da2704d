// Package service contains the business rules of the application. It
// orchestrates domain objects and the persistence interfaces defined in
// internal/store.
//
// Two services are provided:
//
//   - EntryService validates entries and manages their lifecycle (create,
//     update, delete, status change, lookup and example search).
//   - UserService authenticates users and enforces e-mail uniqueness on
//     registration.
//
// Services are stateless. They hold no locks, start no goroutines and make a
// single store call per operation (registration makes two). Concurrency
// control and atomicity are the responsibility of the store.
//
// Error handling:
//   - Field problems are reported as *domain.ValidationError
//   - State-dependent rule violations as *domain.BusinessRuleError
//   - Credential failures as *domain.AuthenticationError
//   - Updating or deleting an unpersisted entry returns domain.ErrEntryNotPersisted
//   - Storage failures are wrapped in *ServiceError and keep their cause for errors.Is
package service
