package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

var logger = gologger.NewLogger()

type (
	HTTPServer struct {
		Echo *echo.Echo

		storage storage.Config
		meta    metastore.MetaStore
	}

	Config struct {
		// Storage selects the backend and endpoint; the graph id comes from the path
		Storage storage.Config
		// Meta lists graphs for GET /graphs. Optional.
		Meta metastore.MetaStore
	}

	CustomValidator struct {
		validator *validator.Validate
	}
)

// NewHTTPServer builds the read only inspection API without listening
func NewHTTPServer(cfg Config) *HTTPServer {
	s := &HTTPServer{
		Echo:    echo.New(),
		storage: cfg.Storage,
		meta:    cfg.Meta,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.JSONSerializer = &utils.NoEscapeJSONSerializer{}

	s.Echo.Use(CreateReqContext)
	s.Echo.Use(LoggerMiddleware)
	s.Echo.Use(middleware.CORS())
	s.Echo.Validator = &CustomValidator{validator: validator.New()}

	// technical - no auth
	s.Echo.GET("/hc", s.HealthCheck)

	graphs := s.Echo.Group("/graphs")
	graphs.GET("", ccHandler(s.ListGraphs))
	graphs.GET("/:graph/nodes/:label", ccHandler(s.GetNodes))
	graphs.GET("/:graph/nodes/:label/ids/:id", ccHandler(s.GetNode))
	graphs.GET("/:graph/edges/:label", ccHandler(s.GetEdges))
	graphs.GET("/:graph/topology/:label/vertices/:vid", ccHandler(s.GetVertexTopology))

	return s
}

func StartHTTPServer(cfg Config) *HTTPServer {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", utils.HTTP_PORT))
	if err != nil {
		logger.Error().Err(err).Msg("error creating tcp listener, exiting")
		os.Exit(1)
	}
	s := NewHTTPServer(cfg)

	s.Echo.Listener = listener
	go func() {
		logger.Info().Msg("starting h2c server on " + listener.Addr().String())
		err := s.Echo.StartH2CServer("", &http2.Server{})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("failed to start h2c server, exiting")
			os.Exit(1)
		}
	}()

	return s
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func ValidateRequest(c echo.Context, s interface{}) error {
	if err := c.Bind(s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(s); err != nil {
		return err
	}
	return nil
}

func (*HTTPServer) HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	return err
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			// default handler
			c.Error(err)
		}
		stop := time.Since(start)
		// Log otherwise
		logger := zerolog.Ctx(c.Request().Context())
		req := c.Request()
		res := c.Response()

		p := req.URL.Path
		if p == "" {
			p = "/"
		}

		cl := req.Header.Get(echo.HeaderContentLength)
		if cl == "" {
			cl = "0"
		}
		logger.Debug().Str("method", req.Method).Str("remote_ip", c.RealIP()).Str("req_uri", req.RequestURI).Str("handler_path", c.Path()).Str("path", p).Int("status", res.Status).Int64("latency_ns", int64(stop)).Str("protocol", req.Proto).Str("bytes_in", cl).Int64("bytes_out", res.Size).Msg("req recived")
		return nil
	}
}
