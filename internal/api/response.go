package api

// Envelope is the response shape shared by the profile endpoints:
// {status, status_code, message?, data?}. The auth endpoints keep their own
// historical shapes and do not use it.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func Success(code int, message string) Envelope {
	return Envelope{Status: "success", StatusCode: code, Message: message}
}

func SuccessData(code int, data any) Envelope {
	return Envelope{Status: "success", StatusCode: code, Data: data}
}

func Error(code int, message string) Envelope {
	return Envelope{Status: "error", StatusCode: code, Message: message}
}
