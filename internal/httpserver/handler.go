package httpserver

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tasktrack-api/docs"
	"tasktrack-api/internal/middleware"
	rtHTTP "tasktrack-api/internal/realtime/delivery/http"
	rtRedis "tasktrack-api/internal/realtime/delivery/redis"
	taskHTTP "tasktrack-api/internal/task/delivery/http"
	taskRepo "tasktrack-api/internal/task/repository/postgre"
	taskUsecase "tasktrack-api/internal/task/usecase"
	userHTTP "tasktrack-api/internal/user/delivery/http"
	userRepo "tasktrack-api/internal/user/repository/postgre"
	userUsecase "tasktrack-api/internal/user/usecase"
)

// Api is the base path for all versioned routes.
const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.logger, srv.jwtMgr)

	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	srv.gin.Use(mw.Locale())

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories.
	usrRepo := userRepo.New(srv.logger, srv.db)
	tskRepo := taskRepo.New(srv.logger, srv.db)

	// Usecases. The realtime hub is built in New(); the user domain
	// depends on it for presence, the task domain for event dispatch,
	// and the hub itself needs the user domain as its directory. The
	// setter hooks close that loop.
	usrUC := userUsecase.New(srv.logger, usrRepo, srv.jwtMgr, srv.rtUC)
	tskUC := taskUsecase.New(srv.logger, tskRepo, usrUC, srv.rtUC, srv.minio, srv.reportBucket)

	srv.rtUC.SetUserDirectory(usrUC)
	srv.rtUC.SetPublisher(srv.redis)

	srv.rtSubscriber = rtRedis.New(srv.redis, srv.rtUC, srv.logger, srv.wsConfig.PublishChannel)

	// HTTP handlers.
	api := srv.gin.Group(Api)

	userHTTP.New(srv.logger, usrUC).MapRoutes(api, mw)
	taskHTTP.New(srv.logger, tskUC).MapRoutes(api, mw)
	rtHTTP.New(srv.rtUC, srv.logger, rtHTTP.WSConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.wsConfig.AllowedOrigins,
	}).MapRoutes(api, mw)

	return nil
}
