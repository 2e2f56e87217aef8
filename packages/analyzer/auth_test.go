package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_BearerToken(t *testing.T) {
	finding := Classify(map[string]string{"Authorization": "Bearer xyz"})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthBearerToken, finding.Type)
	assert.Equal(t, SecurityHigh, finding.SecurityLevel)
}

func TestClassify_BasicAuth(t *testing.T) {
	finding := Classify(map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthBasic, finding.Type)
	assert.Equal(t, SecurityMedium, finding.SecurityLevel)
}

func TestClassify_APIKey(t *testing.T) {
	finding := Classify(map[string]string{"X-API-Key": "k"})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthAPIKey, finding.Type)
}

func TestClassify_LastMatchingRuleWins(t *testing.T) {
	// Both Authorization: Bearer and X-API-Key match; the API key rule sits
	// later in the table, so it wins.
	finding := Classify(map[string]string{
		"Authorization": "Bearer xyz",
		"X-API-Key":     "k",
	})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthAPIKey, finding.Type)
}

func TestClassify_FirstMatchWinsOption(t *testing.T) {
	classifier := NewClassifier(WithFirstMatchWins())

	finding := classifier.Classify(map[string]string{
		"Authorization": "Bearer xyz",
		"X-API-Key":     "k",
	})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthBearerToken, finding.Type)
}

func TestClassify_PresentWithoutKnownPrefix(t *testing.T) {
	// An Authorization header with an unrecognized scheme still counts as
	// authentication being present.
	finding := Classify(map[string]string{"Authorization": "Digest abc"})

	assert.True(t, finding.Present)
	assert.Empty(t, finding.Type)
}

func TestClassify_NoAuth(t *testing.T) {
	finding := Classify(map[string]string{"Content-Type": "application/json"})

	assert.False(t, finding.Present)
	assert.Empty(t, finding.Type)
	assert.Equal(t, SecurityNone, finding.SecurityLevel)
}

func TestClassify_CaseInsensitiveHeaderNames(t *testing.T) {
	finding := Classify(map[string]string{"authorization": "Bearer xyz"})

	assert.True(t, finding.Present)
	assert.Equal(t, AuthBearerToken, finding.Type)
}
