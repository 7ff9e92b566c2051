// Package api exposes the query engine over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hivery/backend/internal/service"
	"hivery/backend/pkg/logger"
)

// QueryService is the subset of the query engine the handlers need
type QueryService interface {
	EmployeesByCompany(ctx context.Context, companyID int) ([]service.Employee, error)
	PersonByID(ctx context.Context, personID int) (*service.PersonProfile, bool, error)
	CompareFriends(ctx context.Context, personA, personB int, pred service.FriendPredicate) (*service.Comparison, error)
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(svc QueryService, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)
	h := &handlers{svc: svc, logger: log}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/company/:id/employee", h.employeesByCompany)
	router.GET("/person/:id", h.personByID)
	router.GET("/person/:id/compare", h.compareFriends)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
	})
	return router
}
