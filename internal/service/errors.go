package service

import "errors"

var (
	// ErrWrongPassword is returned by Authenticate when the credentials do
	// not match any active account. Unknown emails and wrong passwords are
	// deliberately indistinguishable.
	ErrWrongPassword = errors.New("wrong email or password")

	// ErrTokenIsExpiredOrInvalid is the normalised failure for any bearer
	// token that does not verify: expired, malformed, wrong issuer.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed wraps failures while signing a new token.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
