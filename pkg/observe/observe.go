// Package observe bridges the agent core's observer events onto zerolog. The
// core itself carries no logging dependency; this is the wiring layer's
// implementation.
package observe

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/pattarad/relaydesk/agent/contract"
)

type Observer struct {
	logger zerolog.Logger
}

var _ contractx.Observer = (*Observer)(nil)

func New() *Observer {
	return &Observer{logger: log.Logger}
}

func NewWithLogger(logger zerolog.Logger) *Observer {
	return &Observer{logger: logger}
}

func (o *Observer) RoutingDecided(decision contractx.RoutingDecision) {
	o.logger.Info().
		Str("agent", string(decision.AgentType)).
		Float64("confidence", decision.Confidence).
		Str("reasoning", decision.Reasoning).
		Msg("routing decided")
}

func (o *Observer) ToolInvoked(agentType contractx.AgentType, tool string) {
	o.logger.Debug().
		Str("agent", string(agentType)).
		Str("tool", tool).
		Msg("tool invoked")
}

func (o *Observer) ToolFailed(agentType contractx.AgentType, tool, reason string) {
	o.logger.Warn().
		Str("agent", string(agentType)).
		Str("tool", tool).
		Str("reason", reason).
		Msg("tool failed")
}

func (o *Observer) ResponseGenerated(agentType contractx.AgentType, chars int) {
	o.logger.Info().
		Str("agent", string(agentType)).
		Int("chars", chars).
		Msg("response generated")
}
