package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/api"
	api_i "github.com/beka-birhanu/vinom-mazesolver/api/i"
	"github.com/beka-birhanu/vinom-mazesolver/api/identity"
	"github.com/beka-birhanu/vinom-mazesolver/api/mazeapi"
	"github.com/beka-birhanu/vinom-mazesolver/config"
	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-mazesolver/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazesolver/metrics"
	"github.com/beka-birhanu/vinom-mazesolver/service"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	solutionRepo   *repo.SolutionRepo
	solutionCache  i.SolutionCache
	solveService   i.MazeSolver
	mazeGenerator  i.MazeGenerator
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	router         *api.Router
	appLogger      i.Logger
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Runs the maze API under /api/v1 with prometheus metrics at /metrics.

Configuration is read from the environment, or from a .env file in the
working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initSolutionRepo(ctx context.Context) {
	solutionRepo = repo.NewSolutionRepo(mongoClient, config.Envs.DBName, "solutions")
	if err := solutionRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating solution indexes: %v", err))
	}
	appLogger.Info("Solution repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSolutionCache() {
	var err error
	solutionCache, err = cache.NewRedisSolutionCache(redisClient, config.Envs.CacheTTLSeconds, "")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solution cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solution cache initialized")
}

func initSolveService() {
	var err error
	solveService, err = service.NewSolveService(solutionRepo, solutionCache, newLogger("SOLVER", config.ColorCyan), &service.SolveOptions{
		MaxDimension: config.Envs.MaxMazeDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solve service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solve service initialized")
}

func initGenerator() {
	mazeGenerator = service.NewGenerator(config.Envs.MaxMazeDimension, newLogger("GENERATOR", config.ColorMagenta))
	appLogger.Info("Maze generator initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(solveService, mazeGenerator, newLogger("API", config.ColorBlue), config.Envs.MaxMazeDimension)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
		MetricsHandler:          metrics.Handler(),
	})
	appLogger.Info("Router initialized")
}

func serve() error {
	config.Load()
	gin.SetMode(config.Envs.GinMode)

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initSolutionRepo(ctx)
	initSolutionCache()
	initSolveService()
	initGenerator()
	initJWTTokenizer()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		return err
	}
	return nil
}
