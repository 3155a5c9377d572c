package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/metrics/export/prometheus"
	"github.com/MrEthical07/goCred/turnstile"
)

// Config assembles the HTTP surface. Engine is required; a nil Verifier
// disables the bot challenge, which is only sane in tests and local tools.
type Config struct {
	Engine   *goCred.Engine
	Verifier turnstile.Verifier
	Logger   zerolog.Logger
	CORS     CORSConfig
}

type server struct {
	engine   *goCred.Engine
	verifier turnstile.Verifier
	log      zerolog.Logger
}

// NewRouter builds the Gin engine with all routes and middleware attached.
// The caller owns listening and shutdown.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.Engine == nil {
		return nil, errors.New("api: engine required")
	}

	corsCfg := cfg.CORS
	if len(corsCfg.AllowedOrigins) == 0 {
		corsCfg = defaultCORSConfig()
	}

	s := &server{
		engine:   cfg.Engine,
		verifier: cfg.Verifier,
		log:      cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(cors(corsCfg))

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(prometheus.NewPrometheusExporter(cfg.Engine).Handler()))
	router.POST("/register", s.handleRegister)
	router.POST("/login", s.handleLogin)
	router.PATCH("/user", s.handleUpdate)
	router.DELETE("/user", s.handleDelete)

	return router, nil
}
