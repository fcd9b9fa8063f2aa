package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"Inkstone/internal/repository"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *mongo.Database
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	bugRepo := repository.NewBugRepo(db)
	postSearchRepo := es.NewPostRepo(es.Client)

	ctx := context.Background()
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	postService := service.NewPostService(postRepo, userRepo, categoryRepo, postSearchRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	bugService := service.NewBugService(bugRepo)

	handlers := &api.HandlersGroup{
		AuthHandler: handler.NewAuthHandler(authService),
		PostHandler: handler.NewPostHandler(postService),
		UserHandler: handler.NewUserHandler(userService),
		BugHandler:  handler.NewBugHandler(bugService),
	}

	router := api.SetupRouter(handlers, userRepo, cfg)

	cronMgr := cron.NewCronManager(job.NewPopularPostJob(postService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
