package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hivery/backend/internal/model"
	"hivery/backend/internal/service"
	apperrors "hivery/backend/pkg/errors"
)

const (
	msgBadParameter = "bad parameter"
	msgNotFound     = "resource not found"
	msgUnexpected   = "an unexpected error has occurred"
)

type handlers struct {
	svc    QueryService
	logger *zap.Logger
}

type employeesResponse struct {
	Employees []service.Employee `json:"employees"`
}

type personResponse struct {
	Username   string   `json:"username"`
	Age        int      `json:"age"`
	Fruits     []string `json:"fruits"`
	Vegetables []string `json:"vegetables"`
}

type personSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type compareResponse struct {
	This            personSummary `json:"this"`
	Other           personSummary `json:"other"`
	CommonFriendIDs []int         `json:"common_friend_ids"`
}

func errorBody(message string) gin.H {
	return gin.H{"message": message}
}

func summarize(p model.Person) personSummary {
	return personSummary{ID: p.ID, Name: p.Name, Age: p.Age, Address: p.Address, Phone: p.Phone}
}

// GET /company/:id/employee
func (h *handlers) employeesByCompany(c *gin.Context) {
	id, ok := intParam(c, c.Param("id"))
	if !ok {
		return
	}

	employees, err := h.svc.EmployeesByCompany(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, employeesResponse{Employees: employees})
}

// GET /person/:id
func (h *handlers) personByID(c *gin.Context) {
	id, ok := intParam(c, c.Param("id"))
	if !ok {
		return
	}

	profile, found, err := h.svc.PersonByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
		return
	}

	c.JSON(http.StatusOK, personResponse{
		Username:   profile.Person.Email,
		Age:        profile.Person.Age,
		Fruits:     profile.Foods(model.CategoryFruit),
		Vegetables: profile.Foods(model.CategoryVegetable),
	})
}

// GET /person/:id/compare?other_id=N
func (h *handlers) compareFriends(c *gin.Context) {
	id, ok := intParam(c, c.Param("id"))
	if !ok {
		return
	}
	otherID, ok := intParam(c, c.Query("other_id"))
	if !ok {
		return
	}

	cmp, err := h.svc.CompareFriends(c.Request.Context(), id, otherID, service.AliveWithBrownEyes)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		This:            summarize(cmp.This),
		Other:           summarize(cmp.Other),
		CommonFriendIDs: cmp.CommonFriendIDs,
	})
}

// intParam parses a path or query value, answering 400 when it is not an integer
func intParam(c *gin.Context, raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgBadParameter))
		return 0, false
	}
	return v, true
}

func (h *handlers) fail(c *gin.Context, err error) {
	if apperrors.IsUnknownInstance(err) {
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
		return
	}
	h.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, errorBody(msgUnexpected))
}
