package httpx

import (
	"fmt"
	"net/http"

	"github.com/c88lopez/vial-form-app-api/fault"
	"github.com/c88lopez/vial-form-app-api/log"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// LogFault maps a fault to its HTTP response: NotFound to 404,
// ValidationFailed to 400 with the offending field key, anything
// else to 500 with the underlying cause logged and withheld from
// the client.
func LogFault(w http.ResponseWriter, code string, err error) {
	f, ok := fault.As(err)
	if !ok {
		LogInternalError(w, code, err)
		return
	}

	switch f.Kind {
	case fault.KindNotFound:
		LogNotFound(w, code, f.Message)
	case fault.KindValidation:
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "missing required field %q", f.Field)
	default:
		LogInternalError(w, code, err)
	}
}
