// file: internal/settings/settings_test.go
// version: 1.0.0
// guid: d878dbde-ed17-40ba-808f-3f332974040f

package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/bookwatch/internal/config"
	"github.com/jdfalk/bookwatch/internal/database"
)

func storeWith(values map[string]string) *database.MockStore {
	return &database.MockStore{
		GetSettingFunc: func(key string) (string, error) {
			return values[key], nil
		},
		SetSettingFunc: func(key, value string) error {
			values[key] = value
			return nil
		},
	}
}

func TestListFetchIntervalDefaults(t *testing.T) {
	config.AppConfig = config.Config{ListFetchInterval: "6h"}
	svc := New(storeWith(map[string]string{}))
	assert.Equal(t, 6*time.Hour, svc.ListFetchInterval())
}

func TestListFetchIntervalFromStore(t *testing.T) {
	config.AppConfig = config.Config{ListFetchInterval: "6h"}
	svc := New(storeWith(map[string]string{KeyListFetchInterval: "30m"}))
	assert.Equal(t, 30*time.Minute, svc.ListFetchInterval())
}

func TestInvalidIntervalFallsBackToDefault(t *testing.T) {
	config.AppConfig = config.Config{ListFetchInterval: "6h"}
	svc := New(storeWith(map[string]string{KeyListFetchInterval: "42s"}))
	assert.Equal(t, 6*time.Hour, svc.ListFetchInterval())
}

func TestMatchPolicyFromStoreOverridesConfig(t *testing.T) {
	config.AppConfig = config.Config{
		MatchTitleWeight:  0.6,
		MatchAuthorWeight: 0.4,
		MatchThreshold:    0.6,
	}
	svc := New(storeWith(map[string]string{
		KeyMatchTitleWeight: "0.8",
		KeyMatchThreshold:   "0.75",
	}))
	policy := svc.MatchPolicy()
	assert.Equal(t, 0.8, policy.TitleWeight)
	assert.Equal(t, 0.4, policy.AuthorWeight)
	assert.Equal(t, 0.75, policy.Threshold)
}

func TestMatchPolicyRejectsDegenerateWeights(t *testing.T) {
	config.AppConfig = config.Config{}
	svc := New(storeWith(map[string]string{
		KeyMatchTitleWeight:  "0",
		KeyMatchAuthorWeight: "0",
	}))
	policy := svc.MatchPolicy()
	assert.Equal(t, 0.6, policy.TitleWeight)
	assert.Equal(t, 0.4, policy.AuthorWeight)
}

func TestSetValidation(t *testing.T) {
	config.AppConfig = config.Config{}
	values := map[string]string{}
	svc := New(storeWith(values))

	require.NoError(t, svc.Set(KeyListFetchInterval, "12h"))
	assert.Equal(t, "12h", values[KeyListFetchInterval])

	assert.Error(t, svc.Set(KeyListFetchInterval, "2h"))
	assert.Error(t, svc.Set(KeyMatchThreshold, "1.5"))
	assert.Error(t, svc.Set(KeyMatchTitleWeight, "-0.1"))
	assert.Error(t, svc.Set(KeySearchByISBNFirst, "maybe"))
	assert.Error(t, svc.Set("no_such_key", "x"))

	require.NoError(t, svc.Set(KeyMatchThreshold, "0.7"))
	require.NoError(t, svc.Set(KeySearchByISBNFirst, "true"))
	require.NoError(t, svc.Set(KeyHardcoverAPIToken, "tok-123"))
}

func TestSearchByISBNFirst(t *testing.T) {
	config.AppConfig = config.Config{SearchByISBNFirst: false}
	svc := New(storeWith(map[string]string{KeySearchByISBNFirst: "true"}))
	assert.True(t, svc.SearchByISBNFirst())
}
