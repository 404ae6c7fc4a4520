package errors

// Envelope is the JSON response shape shared by all endpoints:
// {success: bool, message?: string, ...payload}.
type Envelope map[string]interface{}

// OK builds a success envelope, merging extra payload fields.
func OK(message string, extra Envelope) Envelope {
	e := Envelope{"success": true}
	if message != "" {
		e["message"] = message
	}
	for k, v := range extra {
		e[k] = v
	}
	return e
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{"success": false, "message": message}
}
