package services

import "context"

// TaskProjection is the fixed subset of a Task's fields sent to an external
// platform: exactly {title, description, assignee, priority}, no more
// (spec.md §3 Glossary: "Projection" — distinct from the full persisted
// record TaskRepository holds; spec.md §4.7 permits an adapter to narrow
// this set further but never widen it).
type TaskProjection struct {
	Title       string
	Description string
	Assignee    string
	Priority    string
}

// IntegrationClient is the common contract every platform adapter
// implements (spec.md §4.8), grounded on the teacher's small-interface,
// concrete-implementation pattern (FirebaseUploader in
// assemblyai_provider.go).
type IntegrationClient interface {
	Platform() string
	CreateTask(ctx context.Context, projection TaskProjection) (externalID, externalURL string, err error)
	Notify(ctx context.Context, message string) error
	Available() bool
}
