package session

// Repo defines the durable storage boundary: one logical record under a
// fixed key, holding the full serialized session. TTL enforcement is the
// Store's job, evaluated at read time, never the backend's.
type Repo interface {
	// Load retrieves the record. Absence is (nil, nil), not an error.
	Load() (*OnboardingSession, error)

	// Save writes the complete record atomically, overwriting any prior one.
	Save(session *OnboardingSession) error

	// Delete removes the record. Deleting an absent record is not an error.
	Delete() error
}
