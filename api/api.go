package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/utils"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *utils.Logger
}

func NewAPIServer(listenAddress string, log *utils.Logger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "dashboard-api",
			ErrorHandler: ErrorHandler,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

// ErrorHandler answers errors that escape a handler with the
// {success:false,error} envelope. *fiber.Error keeps its status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("Starting API Server", "address", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
