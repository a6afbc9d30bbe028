package main

import (
	"github.com/rs/zerolog/log"

	delegatex "github.com/pattarad/relaydesk/agent/delegate"
	routerx "github.com/pattarad/relaydesk/agent/router"
	toolx "github.com/pattarad/relaydesk/agent/tool"
	orchestratorx "github.com/pattarad/relaydesk/orchestrator"
	configx "github.com/pattarad/relaydesk/pkg/config"
	_ "github.com/pattarad/relaydesk/pkg/logger/autoload"
	observex "github.com/pattarad/relaydesk/pkg/observe"
	openrouterx "github.com/pattarad/relaydesk/pkg/openrouter"
	storex "github.com/pattarad/relaydesk/store"
)

func main() {
	storeCfg := configx.MustNew[storex.Config]("DATABASE")
	store := storex.MustNew(*storeCfg)
	defer store.Close()

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	completer := openrouterx.MustNew(*openRouterCfg)

	observer := observex.New()
	deps := toolx.Deps{Support: store, Order: store, Billing: store}

	router := routerx.New(completer, routerx.WithObserver(observer))
	engine := delegatex.New(completer, deps,
		delegatex.WithObserver(observer),
		delegatex.WithUserResolver(store),
	)

	service := orchestratorx.New(router, engine, store)
	_ = service

	log.Info().Str("model", openRouterCfg.Model).Msg("relaydesk core initialized")
}
