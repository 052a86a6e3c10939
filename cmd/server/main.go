// Career advisor
// A login-gated chat page that answers career questions through a remote
// text-generation endpoint, falling back to keyword rules.

package main

import (
	"github.com/andrasnagy-data/careeradvisor/internal/components/advisor"
	"github.com/andrasnagy-data/careeradvisor/internal/components/auth"
	"github.com/andrasnagy-data/careeradvisor/internal/components/session"
	"github.com/andrasnagy-data/careeradvisor/internal/server"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/cookie"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/logging"
	"github.com/andrasnagy-data/careeradvisor/internal/shared/telemetry"
	"github.com/andrasnagy-data/careeradvisor/web"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			telemetry.NewTelemetry,
			cookie.NewCodecFromConfig,
			web.NewTemplates,
			server.NewServer,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			session.NewStore,
			auth.NewAuthService,
			fx.Annotate(auth.NewRouter, fx.ResultTags(`name:"authRouter"`)),
			advisor.NewGenerator,
			advisor.NewResponder,
			advisor.NewService,
			fx.Annotate(advisor.NewRouter, fx.ResultTags(`name:"advisorRouter"`)),
		),
		fx.Invoke(server.Register),
	).Run()
}
