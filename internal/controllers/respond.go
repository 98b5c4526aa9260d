package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/session"
)

// respondError writes {"error": ...} with the status matching err's kind.
// Storage failures are logged at error level; their details stay out of
// the response. Client errors go to debug.
func respondError(c *gin.Context, err error) {
	code := apperr.HTTPStatus(err)
	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"path": c.FullPath(),
		"kind": apperr.KindOf(err).String(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.JSON(code, gin.H{"error": apperr.Message(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
}

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func mustSession(c *gin.Context) (*session.Session, bool) {
	s, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
	}
	return s, ok
}
