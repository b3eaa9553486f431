package router

import (
	"Lee_Social/internal/handler"
	"Lee_Social/internal/middleware"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
)

// InitRouter 显式装配：仓储 -> 服务 -> 处理器，依赖都从构造函数传入
func InitRouter() *gin.Engine {
	r := gin.Default()

	// 配置邮件环境（开发值，后面放 config）
	emailCfg := pkg.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "no-reply@example.com",
		Password: "changeme",
		From:     "NoReply <no-reply@example.com>",
	}

	userRepo := &mysql.UserRepository{DB: mysql.DB}
	followerRepo := &mysql.FollowerRepository{DB: mysql.DB}
	feedRepo := &mysql.FeedRepository{DB: mysql.DB}
	postRepo := &mysql.PostRepository{DB: mysql.DB}
	relationCache := redis.NewRelationCacheRepository()

	userSvc := service.NewUserService(userRepo)
	followerSvc := service.NewFollowerService(followerRepo, userRepo, relationCache)
	feedSvc := service.NewFeedService(feedRepo, postRepo, userRepo)
	notifySvc := service.NewNotifyService(emailCfg, userRepo)

	user := handler.NewUserHandler(userSvc)
	follower := handler.NewFollowerHandler(followerSvc, notifySvc)
	feed := handler.NewFeedHandler(feedSvc)
	post := handler.NewPostHandler(feedSvc)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 好友关系相关接口
	followerGroup := r.Group("/api/follower")
	followerGroup.Use(middleware.AuthMiddleware())
	{
		followerGroup.POST("/send", follower.Send)
		followerGroup.POST("/accept", follower.Accept)
		followerGroup.GET("/relation", follower.Relation)
		followerGroup.GET("/list", follower.List)
		followerGroup.GET("/list/all", follower.ListAll)
		followerGroup.GET("/:id", follower.Profile)
	}

	// 时间线与发帖接口
	feedGroup := r.Group("/api/feed")
	feedGroup.Use(middleware.AuthMiddleware())
	{
		feedGroup.GET("/", feed.Feed)
	}
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/", post.CreatePost)
		postGroup.GET("/:id", post.GetPost)
	}

	return r
}
