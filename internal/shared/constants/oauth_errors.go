package constants

// OAuthErrorCode is the machine-readable reason carried on the callback
// redirect. The frontend maps these to user-facing messages.
type OAuthErrorCode string

const (
	OAuthErrorNoCode      OAuthErrorCode = "no_code"
	OAuthErrorInvalidUser OAuthErrorCode = "invalid_user"
	OAuthErrorTokenError  OAuthErrorCode = "token_error"
	OAuthErrorNoToken     OAuthErrorCode = "no_token"
	OAuthErrorNoUser      OAuthErrorCode = "no_user"
	OAuthErrorServerError OAuthErrorCode = "server_error"
)

// OAuthErrorMessages maps reason codes to log-friendly descriptions.
var OAuthErrorMessages = map[OAuthErrorCode]string{
	OAuthErrorNoCode:      "authorization code is missing from the callback",
	OAuthErrorInvalidUser: "state parameter does not resolve to a known account",
	OAuthErrorTokenError:  "provider rejected the token exchange",
	OAuthErrorNoToken:     "token exchange response did not contain an access token",
	OAuthErrorNoUser:      "no account available to persist the credential",
	OAuthErrorServerError: "unexpected failure while handling the callback",
}

// GetOAuthErrorMessage returns a description for the given reason code.
func GetOAuthErrorMessage(code OAuthErrorCode) string {
	if msg, ok := OAuthErrorMessages[code]; ok {
		return msg
	}
	return "unknown OAuth failure"
}
