package dto

// ErrorResponse cuerpo de error (HTTP y WebSocket).
// Request indica el evento que originó el error cuando llega por WebSocket.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Request string `json:"request,omitempty"`
}
