package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/config"
	"github.com/satriadi/go-task-api/internal/application"
	pginfra "github.com/satriadi/go-task-api/internal/infrastructure/postgres"
	handlers "github.com/satriadi/go-task-api/internal/interface/http"
	"github.com/satriadi/go-task-api/internal/router/modules"
	"github.com/satriadi/go-task-api/pkg/helpers"
)

// Deps carries the infrastructure constructed in main. Components receive
// their collaborators explicitly; nothing is held as package-level state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Pub    *helpers.RabbitPublisher
	Tokens *helpers.TokenManager
}

// InitModules builds the application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	userRepo := pginfra.NewUserRepository(d.Pool)
	taskRepo := pginfra.NewTaskRepository(d.Pool)

	authSvc := application.NewAuthService(userRepo, d.Tokens, d.Cfg.TokenTTL, d.Redis, d.Pub, d.Logger)
	taskSvc := application.NewTaskService(taskRepo, d.ES, d.Cfg.ESTasksIndex, d.Logger)

	authHandler := handlers.NewAuthHandler(authSvc, d.Logger, d.Cfg.Debug)
	taskHandler := handlers.NewTaskHandler(taskSvc, d.Logger, d.Cfg.Debug)

	r.Add(modules.NewAuthModule(authHandler, authSvc, d.Logger))
	r.Add(modules.NewTaskModule(taskHandler, authSvc, d.Logger))
}
