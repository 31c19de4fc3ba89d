package service

// Result is the uniform envelope returned by every product operation.
// Status is true iff the operation completed as intended; HTTPCode is the
// status the HTTP layer relays. It carries no validation logic of its own.
type Result struct {
	Status   bool   `json:"status"`
	HTTPCode int    `json:"http_code"`
	Message  string `json:"message"`
	Error    string `json:"error"`
	Data     any    `json:"data"`
}

// NewResult returns an envelope with the default state: success with no
// status code assigned yet.
func NewResult() *Result {
	return &Result{Status: true, HTTPCode: -1}
}

// Success builds a successful envelope with the given code, message and payload.
func Success(code int, message string, data any) *Result {
	return &Result{Status: true, HTTPCode: code, Message: message, Data: data}
}

// Failure builds a failed envelope with the given code and message.
func Failure(code int, message string) *Result {
	return &Result{Status: false, HTTPCode: code, Message: message}
}
