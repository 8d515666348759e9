package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOAuthErrorMessage(t *testing.T) {
	codes := []OAuthErrorCode{
		OAuthErrorNoCode,
		OAuthErrorInvalidUser,
		OAuthErrorTokenError,
		OAuthErrorNoToken,
		OAuthErrorNoUser,
		OAuthErrorServerError,
	}
	for _, code := range codes {
		assert.NotEmpty(t, GetOAuthErrorMessage(code), "code %s has no description", code)
	}

	assert.Equal(t, "unknown OAuth failure", GetOAuthErrorMessage(OAuthErrorCode("bogus")))
}
