// @title Arsongs Music API
// @version 1.0
// @description 音乐流媒体服务：账户、曲库、歌单、喜欢与播放记录、搜索、分享页和点歌请求

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Token {key}
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/weiwangfds/arsongs/config"
	"github.com/weiwangfds/arsongs/internal/database"
	"github.com/weiwangfds/arsongs/internal/logger"
	"github.com/weiwangfds/arsongs/internal/router"
	"github.com/weiwangfds/arsongs/internal/service/account"
	"github.com/weiwangfds/arsongs/internal/service/catalog"
	"github.com/weiwangfds/arsongs/internal/service/mail"
	"github.com/weiwangfds/arsongs/internal/service/otp"
	"github.com/weiwangfds/arsongs/internal/service/storage"
	"golang.org/x/net/http2"
	"gorm.io/gorm"
)

// mailTimeout 单封邮件发送超时
const mailTimeout = 30 * time.Second

func main() {
	app := &cli.Command{
		Name:    "arsongs",
		Usage:   "Music streaming API server",
		Version: router.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.yaml",
				Sources: cli.EnvVars(config.EnvPrefix + "_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update database tables and indexes",
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "Create an active staff account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: createAdmin,
			},
			{
				Name:   "check-storage",
				Usage:  "Test the connection to the configured media storage",
				Action: checkStorage,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "arsongs: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、初始化日志并连接数据库
func bootstrap(cmd *cli.Command) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func migrate(_ context.Context, cmd *cli.Command) error {
	_, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	return database.Migrate(db)
}

func createAdmin(ctx context.Context, cmd *cli.Command) error {
	cfg, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	mailService := mail.NewMailService(mail.LogSender{}, mailTimeout)
	otpService := otp.NewOTPService(cfg.Auth.OTPLength, cfg.Auth.OTPTTL)
	accounts := account.NewAccountService(db, otpService, mailService)

	user, err := accounts.CreateAdmin(ctx, &account.RegisterRequest{
		Username: cmd.String("username"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return err
	}
	logger.Infof("管理员创建成功: id=%d, username=%s", user.ID, user.Username)
	return nil
}

func checkStorage(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return err
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if err := store.TestConnection(ctx); err != nil {
		return err
	}
	logger.Infof("存储连接正常: provider=%s", store.Provider())
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	slides, err := catalog.LoadSlides(cfg.Content.SlidesFile)
	if err != nil {
		return err
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	// 远程文件删除在后台队列中执行，失败时自动重试
	assets := storage.NewCleanupQueue(store,
		storage.WithQueueSize(cfg.Storage.Cleanup.QueueSize),
		storage.WithRetryPolicy(cfg.Storage.Cleanup.MaxRetries, cfg.Storage.Cleanup.RetryInterval))
	if err := assets.Start(ctx); err != nil {
		return err
	}
	mailService := mail.NewMailService(mail.NewSender(cfg.Mail), mailTimeout)
	cleanup := func() {
		mailService.Wait()
		if err := assets.Stop(); err != nil {
			logger.Errorf("停止远程文件清理队列失败: %v", err)
		}
	}

	r := router.NewRouter(db, cfg, router.Dependencies{
		Mail:   mailService,
		Assets: assets,
		Slides: slides,
	})

	srv := &http.Server{
		Handler:      r.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	if cfg.Server.EnableHTTPS {
		srv.Addr = ":" + strconv.Itoa(cfg.Server.HTTPSPort)
		srv.TLSConfig = &tls.Config{
			NextProtos: []string{"h2", "http/1.1"},
		}
		if cfg.Server.EnableHTTP2 {
			if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
				cleanup()
				return fmt.Errorf("配置HTTP/2失败: %w", err)
			}
		}
	} else {
		srv.Addr = ":" + strconv.Itoa(cfg.Server.Port)
	}

	listen := func() error {
		if cfg.Server.EnableHTTPS {
			logger.Infof("HTTPS服务器启动在端口 %d (HTTP/2: %v)", cfg.Server.HTTPSPort, cfg.Server.EnableHTTP2)
			return srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		}
		logger.Infof("HTTP服务器启动在端口 %d", cfg.Server.Port)
		return srv.ListenAndServe()
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return run(srv, listen, quit, cleanup)
}

// run 启动服务器并阻塞到启动失败或收到退出信号
// cleanup 在任一退出路径上都会执行，用于等待后台邮件发送并停止删除队列
func run(srv *http.Server, listen func() error, quit <-chan os.Signal, cleanup func()) error {
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}

	logger.Info("服务器已退出")
	return nil
}
