// ABOUTME: Response envelope classification for Nello API calls
// ABOUTME: Extracts result.status and result.message and decides success

package nello

import "github.com/tidwall/gjson"

// statusCode extracts the status string from a response's result envelope.
// Returns the empty string when the envelope or the field is absent.
func statusCode(body []byte) string {
	return gjson.GetBytes(body, "result.status").String()
}

// errorMessage extracts the error message from a response's result envelope.
func errorMessage(body []byte) string {
	return gjson.GetBytes(body, "result.message").String()
}

// checkSuccess reports whether an API call succeeded.
// The login endpoint signals success with a status of "OK"; every other
// endpoint uses "200".
func checkSuccess(body []byte) bool {
	switch statusCode(body) {
	case "200", "OK":
		return true
	}
	return false
}

// publicSuccess reports whether a public-API call succeeded. The public API
// uses a boolean result.success instead of the status string envelope.
func publicSuccess(body []byte) bool {
	return gjson.GetBytes(body, "result.success").Bool()
}
