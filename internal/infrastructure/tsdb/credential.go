package tsdb

// AuthScheme selects how a Credential is attached to a request.
type AuthScheme int

const (
	// AuthNone sends no authentication header.
	AuthNone AuthScheme = iota

	// AuthBasic sends HTTP basic authentication.
	AuthBasic

	// AuthToken sends "Authorization: Token <token>".
	AuthToken
)

// String returns the scheme name for logging.
func (s AuthScheme) String() string {
	switch s {
	case AuthBasic:
		return "basic"
	case AuthToken:
		return "token"
	default:
		return "none"
	}
}

// Credential carries the authentication for one write.
type Credential struct {
	Scheme   AuthScheme
	Username string
	Password string
	Token    string
}

// BasicAuth returns a basic credential, or an empty one when user is blank.
func BasicAuth(user, password string) Credential {
	if user == "" {
		return Credential{}
	}
	return Credential{Scheme: AuthBasic, Username: user, Password: password}
}

// TokenAuth returns a token credential, or an empty one when token is blank.
func TokenAuth(token string) Credential {
	if token == "" {
		return Credential{}
	}
	return Credential{Scheme: AuthToken, Token: token}
}
