// Package autoload initializes the global logger from LOG_* environment
// variables on import.
package autoload

import (
	configx "github.com/pattarad/relaydesk/pkg/config"
	logx "github.com/pattarad/relaydesk/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
