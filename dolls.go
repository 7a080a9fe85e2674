package dolls

import (
	"github.com/DarcJC/Dolls/logger"
	"github.com/sirupsen/logrus"
)

// SetLogger replaces the logrus instance the whole module writes to.
// Sessions and servers capture their log entries at construction, so swap
// the logger before building anything that should use it.
func SetLogger(l *logrus.Logger) {
	logger.Default = l
}
