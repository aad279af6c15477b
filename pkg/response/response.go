package response

import appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"

// Envelope is the contract every bridge operation answers with. The UI layer
// only ever inspects Success, Data and Error.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Err converts any error into a failure envelope. Nothing else ever crosses
// the bridge boundary.
func Err(err error) Envelope {
	appErr := appErrors.FromError(err)
	return Envelope{Success: false, Error: appErr.Message, Code: appErr.Code}
}
