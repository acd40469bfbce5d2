package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/weiwangfds/arsongs/config"
	_ "github.com/weiwangfds/arsongs/docs" // swagger docs
	"github.com/weiwangfds/arsongs/internal/handler"
	"github.com/weiwangfds/arsongs/internal/middleware"
	"github.com/weiwangfds/arsongs/internal/service/account"
	"github.com/weiwangfds/arsongs/internal/service/catalog"
	"github.com/weiwangfds/arsongs/internal/service/engagement"
	"github.com/weiwangfds/arsongs/internal/service/mail"
	"github.com/weiwangfds/arsongs/internal/service/otp"
	"github.com/weiwangfds/arsongs/internal/service/playlist"
	"github.com/weiwangfds/arsongs/internal/service/search"
	"github.com/weiwangfds/arsongs/internal/service/share"
	"github.com/weiwangfds/arsongs/internal/service/songrequest"
	"github.com/weiwangfds/arsongs/internal/service/storage"
	"gorm.io/gorm"
)

// Version 服务版本
const Version = "1.0.0"

// Dependencies 路由依赖的外部组件
type Dependencies struct {
	Mail   mail.MailService
	Assets storage.AssetStore
	Slides catalog.SlidesConfig
}

// Router 路由配置
type Router struct {
	engine   *gin.Engine
	db       *gorm.DB
	accounts account.AccountService
}

// NewRouter 创建路由实例
func NewRouter(db *gorm.DB, cfg *config.Config, deps Dependencies) *Router {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	handler.RegisterValidation()

	engine := gin.New()

	// 初始化服务
	otpService := otp.NewOTPService(cfg.Auth.OTPLength, cfg.Auth.OTPTTL)
	accountService := account.NewAccountService(db, otpService, deps.Mail)
	catalogService := catalog.NewCatalogService(db)
	manageService := catalog.NewManageService(db, deps.Assets)
	slideService := catalog.NewSlideService(deps.Slides)
	engagementService := engagement.NewEngagementService(db)
	searchService := search.NewSearchService(db)
	playlistService := playlist.NewPlaylistService(db)
	songRequestService := songrequest.NewSongRequestService(db)
	shareService := share.NewShareService(db, cfg.Share)

	// 初始化处理器
	authHandler := handler.NewAuthHandler(accountService)
	contentHandler := handler.NewContentHandler(catalogService, slideService, engagementService, searchService, cfg.Content)
	playlistHandler := handler.NewPlaylistHandler(playlistService, cfg.Content)
	songRequestHandler := handler.NewSongRequestHandler(songRequestService)
	manageHandler := handler.NewManageHandler(manageService, songRequestService)
	shareHandler := handler.NewShareHandler(shareService)

	// 使用中间件
	loggerMiddleware := middleware.NewLoggerMiddleware("/health")
	engine.Use(gin.Recovery())
	engine.Use(loggerMiddleware.RequestID())
	engine.Use(loggerMiddleware.AccessLog())
	engine.Use(middleware.RequestLogger(middleware.DefaultRequestLoggerConfig(cfg.Server.RequestLog)))

	// 配置CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        86400,
	}
	if len(cfg.Server.AllowOrigins) == 0 || containsWildcard(cfg.Server.AllowOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	engine.Use(cors.New(corsConfig))

	// Swagger文档路由
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"message": "database ping failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	optional := middleware.OptionalAuth(accountService)
	required := middleware.RequireAuth(accountService)

	// API路由组
	api := engine.Group("/api/v1")
	{
		// 基础信息接口
		api.GET("/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service": "Arsongs Music API",
				"version": Version,
				"storage": deps.Assets.Provider(),
			})
		})

		// 账户接口
		auth := api.Group("/auth")
		if cfg.Auth.RateLimit > 0 {
			auth.Use(middleware.NewIPRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst).Middleware())
		}
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/resend-email-otp", authHandler.ResendEmailOTP)
			auth.POST("/verify-email-and-activate-account", authHandler.VerifyEmail)
			auth.POST("/request-password-change-email-otp", authHandler.RequestPasswordReset)
			auth.POST("/reset-password-with-email", authHandler.ResetPassword)
			auth.POST("/username/login", authHandler.Login)
			auth.POST("/logout", required, authHandler.Logout)
			auth.GET("/me", required, authHandler.Me)
		}

		// 曲库内容接口
		content := api.Group("/content")
		{
			browse := content.Group("", optional)
			browse.GET("/albums", contentHandler.ListAlbums)
			browse.GET("/albums/:id", contentHandler.GetAlbum)
			browse.GET("/artists", contentHandler.ListArtists)
			browse.GET("/artists/:id", contentHandler.GetArtist)
			browse.GET("/tags", contentHandler.ListTags)
			browse.GET("/tags/:id", contentHandler.GetTag)
			browse.GET("/songs", contentHandler.ListSongs)
			browse.GET("/songs/search", contentHandler.SearchSongs)
			browse.GET("/songs/random", contentHandler.RandomSong)
			browse.GET("/songs/:id", contentHandler.GetSong)
			browse.GET("/search", contentHandler.Search)
			browse.GET("/latest-playlists", contentHandler.LatestPlaylists)
			browse.GET("/get-slides", contentHandler.GetSlides)

			// 喜欢和播放记录需要登录
			liked := content.Group("/liked-songs", required)
			{
				liked.GET("", contentHandler.ListLiked)
				liked.POST("", contentHandler.Like)
				liked.GET("/:song_id", contentHandler.IsLiked)
				liked.DELETE("/:song_id", contentHandler.Unlike)
			}

			history := content.Group("/history", required)
			{
				history.GET("", contentHandler.ListHistory)
				history.DELETE("", contentHandler.ClearHistory)
				history.DELETE("/:id", contentHandler.DeleteHistory)
			}
		}

		// 歌单接口，读取允许匿名访问公开歌单
		playlists := api.Group("/playlists")
		{
			playlists.POST("", required, playlistHandler.Create)
			playlists.GET("", required, playlistHandler.ListOwn)
			playlists.GET("/:id", optional, playlistHandler.Get)
			playlists.PUT("/:id", required, playlistHandler.Update)
			playlists.DELETE("/:id", required, playlistHandler.Delete)
			playlists.POST("/:id/songs", required, playlistHandler.AddSongs)
			playlists.GET("/:id/songs", optional, playlistHandler.ListSongs)
			playlists.DELETE("/:id/songs/:entry_id", required, playlistHandler.RemoveEntry)
			playlists.GET("/:id/seek", optional, playlistHandler.Seek)
			playlists.GET("/:id/random", optional, playlistHandler.Random)
		}

		// 点歌请求接口
		requests := api.Group("/song-requests/handle", required)
		{
			requests.GET("", songRequestHandler.List)
			requests.POST("", songRequestHandler.Create)
			requests.GET("/:id", songRequestHandler.Get)
			requests.PUT("/:id", songRequestHandler.Update)
			requests.DELETE("/:id", songRequestHandler.Delete)
			requests.POST("/:id/reopen", songRequestHandler.Reopen)
		}

		// 曲库管理接口，仅管理员
		manage := api.Group("/manage", required, middleware.RequireStaff())
		{
			manage.POST("/albums", manageHandler.CreateAlbum)
			manage.DELETE("/albums/:id", manageHandler.DeleteAlbum)
			manage.POST("/artists", manageHandler.CreateArtist)
			manage.DELETE("/artists/:id", manageHandler.DeleteArtist)
			manage.POST("/tags", manageHandler.CreateTag)
			manage.DELETE("/tags/:id", manageHandler.DeleteTag)
			manage.POST("/songs", manageHandler.CreateSong)
			manage.PUT("/songs/:id", manageHandler.UpdateSong)
			manage.DELETE("/songs/:id", manageHandler.DeleteSong)
			manage.POST("/song-requests/:id/answer", manageHandler.AnswerSongRequest)
		}
	}

	// 分享页，供社交平台爬虫抓取
	shareGroup := engine.Group("/share/content")
	{
		shareGroup.GET("/songs/:id", shareHandler.Song)
		shareGroup.GET("/playlists/:id", shareHandler.Playlist)
		shareGroup.GET("/albums/:id", shareHandler.Album)
		shareGroup.GET("/artists/:id", shareHandler.Artist)
	}

	return &Router{
		engine:   engine,
		db:       db,
		accounts: accountService,
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB 获取数据库连接
func (r *Router) GetDB() *gorm.DB {
	return r.db
}

// Accounts 获取账户服务，供命令行创建管理员等场景复用
func (r *Router) Accounts() account.AccountService {
	return r.accounts
}
