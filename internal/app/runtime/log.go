package runtime

import (
	stdlog "log"

	"github.com/sirupsen/logrus"

	"github.com/R3E-Network/petstore/internal/logging"
)

// stdLogger routes net/http's own messages through logrus at warn level.
func stdLogger(log *logging.Logger) *stdlog.Logger {
	return stdlog.New(log.WriterLevel(logrus.WarnLevel), "", 0)
}
