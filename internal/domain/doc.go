// Package domain contains the core business entities, value objects, and
// domain logic of the application: financial entries with their type and
// workflow status, users, and the error kinds reported to end users.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
