package handlers

import (
	"fmt"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/servedir/internal/errortracking"
)

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	err := fmt.Errorf("recovered from panic: %s", fmt.Sprint(v...))

	log.WithError(err).Error("Handler panicked")
	errortracking.CaptureErrWithStackTrace(err)
}

// Recovery answers 500 when handler panics, logging and capturing the panic
func Recovery(handler http.Handler) http.Handler {
	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(recoveryLogger{}),
	)(handler)
}
