package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	AdminSecretKey   = "ADMIN_SECRET"
	NonceSecretKey   = "NONCE_SECRET"
	AuthRedisURL     = "AUTH_REDIS_URL"
	AuthRedisPass    = "AUTH_REDIS_PASS"
	WidgetRedisURL   = "WIDGET_REDIS_URL"
	WidgetRedisPass  = "WIDGET_REDIS_PASS"
	TavusAPIBase     = "TAVUS_API_BASE"
	WebUrl           = "WEB_URL"
)

// Required lists the variables every server binary refuses to start without.
// TAVUS_API_BASE is optional (the client falls back to the hosted API) and
// the remote api key itself lives in the settings store, not the process env.
var Required = []string{
	AWSRegion,
	AWSID,
	AWSSecret,
	AdminSecretKey,
	NonceSecretKey,
	AuthRedisURL,
	WidgetRedisURL,
	WebUrl,
}

// MustCheck panics when a required variable is unset. Called from the cmd
// mains after the .env file has been loaded, never at import time, so test
// binaries stay runnable without an environment.
func MustCheck() {
	for _, key := range Required {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
