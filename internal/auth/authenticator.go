package auth

import "context"

// OwnerSubject is the token subject issued to the ledger owner.
const OwnerSubject = "owner"

// Authenticator defines the interface for authentication implementations.
// The ledger has a single owner, so a successful check yields the subject to
// put in the issued token rather than a user record.
type Authenticator interface {
	// Authenticate verifies the credential and returns the token subject.
	Authenticate(ctx context.Context, credential string) (string, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
