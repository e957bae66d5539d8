package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ifuryst/postcraft/internal/config"
	"github.com/ifuryst/postcraft/internal/generator"
	"github.com/ifuryst/postcraft/internal/migrate"
	"github.com/ifuryst/postcraft/internal/models"
	"github.com/ifuryst/postcraft/internal/server"
	"github.com/ifuryst/postcraft/internal/service"
	"github.com/ifuryst/postcraft/pkg/logger"
)

var (
	configPath string
	version    = "0.1.0"
	gitCommit  = "unknown"
	buildTime  = "unknown"

	genInput       models.ProjectInput
	genPosts       int
	genTemperature float64
)

var rootCmd = &cobra.Command{
	Use:   "postcraft",
	Short: "Postcraft - AI social media post generator",
	Long:  `Postcraft turns a short business description into a batch of ready-to-publish social posts and keeps every batch for later review and export.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		// .env is optional
		_ = godotenv.Load()
	},
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Postcraft %s\n", version)
		fmt.Printf("Git commit: %s\n", gitCommit)
		fmt.Printf("Build time: %s\n", buildTime)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

var totpCmd = &cobra.Command{
	Use:   "totp-secret",
	Short: "Generate an admin TOTP secret for guarding deletes",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, url, err := service.GenerateSecret("admin")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Secret: %s\nURL: %s\n", secret, url)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate posts for a business and print them without storing",
	RunE:  runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/server.yaml", "config file path")

	flags := generateCmd.Flags()
	flags.StringVar(&genInput.BusinessName, "business", "", "business name")
	flags.StringVar(&genInput.Industry, "industry", "", "industry")
	flags.StringVar(&genInput.TargetAudience, "audience", "", "target audience")
	flags.StringVar(&genInput.Location, "location", "", "location")
	flags.StringVar(&genInput.Goal, "goal", "Engagement", "goal (Leads, Branding, Sales, Engagement)")
	flags.StringVar(&genInput.Tone, "tone", "Professional", "tone (Professional, Friendly, Bold, Educational)")
	flags.IntVarP(&genPosts, "posts", "n", models.DefaultNumberOfPosts, "number of posts (1-10)")
	flags.Float64VarP(&genTemperature, "temperature", "t", models.DefaultTemperature, "sampling temperature (0-1)")
	_ = generateCmd.MarkFlagRequired("business")
	_ = generateCmd.MarkFlagRequired("industry")
	_ = generateCmd.MarkFlagRequired("audience")

	rootCmd.AddCommand(versionCmd, migrateCmd, generateCmd, totpCmd)
}

// setup loads the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, appLogger, nil
}

func runServer(*cobra.Command, []string) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Postcraft server", zap.String("version", version))

	// Create server
	srv, err := server.NewServer(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start server
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := srv.Start(ctx); err != nil {
			appLogger.Error("Server failed to start", zap.Error(err))
			cancel()
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		appLogger.Info("Shutting down server...")
	case <-ctx.Done():
		appLogger.Info("Server context cancelled")
	}

	// Graceful shutdown
	if err := srv.Shutdown(context.Background()); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	appLogger.Info("Server exited")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	applied, err := migrate.Up(ctx, cfg.Database.DSN(), appLogger)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Printf("Applied %s\n", v)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	genInput.NumberOfPosts = &genPosts
	genInput.Temperature = &genTemperature
	project := genInput.Project()

	gen := generator.New(cfg.Gemini.Generator(), nil, appLogger)
	posts, err := gen.Generate(cmd.Context(), service.ProjectData(&project), project.Temperature)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), service.RenderExport(&project, service.BuildPosts(posts, time.Now())))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
