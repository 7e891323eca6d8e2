package workspace

import (
	"fmt"

	"bennypowers.dev/classwrap/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs an error to stderr and to the client's output panel
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	logMessage(context, protocol.MessageTypeError, message)
}

// LogWarning logs a warning to stderr and to the client's output panel
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	logMessage(context, protocol.MessageTypeWarning, message)
}

// ShowMessage sends a message to be displayed to the user
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}

// logMessage notifies from a goroutine: the handler that logs may be
// running inside the connection's read loop
func logMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    messageType,
		Message: message,
	})
}
