package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tuhang/eduplan/internal/observability"
	"github.com/tuhang/eduplan/internal/profile"
	"github.com/tuhang/eduplan/plugin/context7"
	"github.com/tuhang/eduplan/server/lesson"
	"github.com/tuhang/eduplan/server/practices"
	apiv1 "github.com/tuhang/eduplan/server/router/api/v1"
	"github.com/tuhang/eduplan/server/studentdata"
	"github.com/tuhang/eduplan/store"
	"github.com/tuhang/eduplan/store/db"
)

const version = "0.4.0"

var (
	instanceProfile *profile.Profile

	rootCmd = &cobra.Command{
		Use:   "eduplan",
		Short: "个性化教案生成与教学实践检索服务",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
)

func init() {
	instanceProfile = &profile.Profile{
		Mode:    "demo",
		Addr:    "",
		Port:    8082,
		Data:    "",
		Driver:  "sqlite",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&instanceProfile.Mode, "mode", "m", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().StringVarP(&instanceProfile.Addr, "addr", "a", "", "address of server")
	rootCmd.PersistentFlags().IntVarP(&instanceProfile.Port, "port", "p", 8082, "port of server")
	rootCmd.PersistentFlags().StringVarP(&instanceProfile.Data, "data", "d", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&instanceProfile.Driver, "driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().StringVar(&instanceProfile.DSN, "dsn", "", "database source name")

	viper.SetEnvPrefix("eduplan")
	viper.AutomaticEnv()
	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		_ = viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	}
}

func run() error {
	instanceProfile.Mode = viper.GetString("mode")
	if addr := viper.GetString("addr"); addr != "" {
		instanceProfile.Addr = addr
	}
	if port := viper.GetInt("port"); port != 0 {
		instanceProfile.Port = port
	}
	if data := viper.GetString("data"); data != "" {
		instanceProfile.Data = data
	}
	if dsn := viper.GetString("dsn"); dsn != "" {
		instanceProfile.DSN = dsn
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return err
	}

	logger := observability.NewLogger(instanceProfile.Mode)

	driver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	st := store.New(driver, instanceProfile)
	if err := st.Migrate(context.Background()); err != nil {
		return err
	}

	source := context7.NewClient(&context7.Config{
		BaseURL: instanceProfile.Context7BaseURL,
		APIKey:  instanceProfile.Context7APIKey,
		Timeout: instanceProfile.PracticeTimeout,
	})

	practiceService := practices.NewService(source, practices.ServiceConfig{
		CacheTTL:        instanceProfile.PracticeCacheTTL,
		CategoryTimeout: instanceProfile.PracticeTimeout,
		CleanupInterval: 10 * time.Minute,
	}, logger)
	defer practiceService.Close()

	students := studentdata.NewManager(logger)
	generator := lesson.NewGenerator(lesson.Config{
		APIKey:  instanceProfile.OpenAIAPIKey,
		BaseURL: instanceProfile.OpenAIBaseURL,
		Model:   instanceProfile.LLMModel,
	}, nil, students, practiceService, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	apiService := apiv1.NewAPIV1Service(instanceProfile, st, practiceService, generator, students, logger)
	apiService.Register(e)

	listen := fmt.Sprintf("%s:%d", instanceProfile.Addr, instanceProfile.Port)
	go func() {
		logger.Info("server started",
			"addr", listen, "mode", instanceProfile.Mode, "version", version,
			"llm_enabled", instanceProfile.IsLLMEnabled())
		if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}
	if err := st.Close(); err != nil {
		logger.Error("failed to close store", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
