package dto

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKWithMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func Fail(err string) Envelope {
	return Envelope{Success: false, Error: err}
}

func FailWithMessage(err, message string) Envelope {
	return Envelope{Success: false, Error: err, Message: message}
}
