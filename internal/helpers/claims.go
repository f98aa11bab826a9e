package helpers

// IdentityKey is the gin context key holding the caller's verified identity.
const IdentityKey = "user_email"

// identityFields lists the claim names consulted for the caller identity,
// highest priority first.
var identityFields = []string{"sub", "email", "emailAddress"}

type IdentityStatus int

const (
	// TokenInvalid covers bad signatures, unexpected algorithms, expired or
	// otherwise unparseable tokens.
	TokenInvalid IdentityStatus = iota
	IdentityAbsent
	IdentityFound
)

func (s IdentityStatus) String() string {
	switch s {
	case IdentityFound:
		return "identity_found"
	case IdentityAbsent:
		return "identity_absent"
	default:
		return "token_invalid"
	}
}

// IdentityResult is the outcome of decoding a session token.
type IdentityResult struct {
	Status   IdentityStatus
	Identity string
	// Field is the claim the identity came from.
	Field string
	Err   error
}
