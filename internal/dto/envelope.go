package dto

// Envelope is the wire contract every widget endpoint answers with. The
// embed script only ever branches on Success; Data carries either the
// operation result or a FailureData.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// FailureData surfaces a human-readable message to the visitor and an
// optional debug payload (status codes, raw bodies) for operators.
type FailureData struct {
	Message string      `json:"message"`
	Debug   interface{} `json:"debug,omitempty"`
}

func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(message string, debug interface{}) Envelope {
	return Envelope{Success: false, Data: FailureData{Message: message, Debug: debug}}
}
