// Package emasstest serves a fake eMASS API for tests.
//
// Every GET route answers with an echo document describing what it received:
//
//	{"meta":{"code":200},"data":{"route":..., "path":..., "params":{...}, "query":{...}}}
//
// Requests without the expected api-key/user-uid headers get 401, system 999
// does not exist (404), and artifact exports answer with plain text.
package emasstest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Test credentials accepted by the fake API.
const (
	APIKey  = "test-api-key"
	UserUID = "test-user"
)

// MissingSystemID is the systemId the fake API reports as not found.
const MissingSystemID = "999"

// Recorded is what the fake API saw for one request.
type Recorded struct {
	Path      string
	RawQuery  string
	Header    http.Header
	UserAgent string
}

// Server is a running fake eMASS API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewServer starts a fake API and closes it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{}
	router := gin.New()
	router.Use(s.record, requireCredentials)
	setupRoutes(router)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// Requests returns every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails the test when none was made.
func (s *Server) Last(t testing.TB) Recorded {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("fake eMASS API received no requests")
	}
	return reqs[len(reqs)-1]
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		Header:    c.Request.Header.Clone(),
		UserAgent: c.Request.UserAgent(),
	})
	s.mu.Unlock()
	c.Next()
}

func requireCredentials(c *gin.Context) {
	if c.GetHeader("api-key") != APIKey || c.GetHeader("user-uid") != UserUID {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"meta": gin.H{"code": http.StatusUnauthorized, "errorMessage": "Invalid API key or user"},
		})
		return
	}
	c.Next()
}

func setupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"meta": gin.H{"code": http.StatusOK}, "data": gin.H{"success": true}})
	})

	systems := api.Group("/systems")
	{
		systems.GET("", echo)

		system := systems.Group("/:systemId", knownSystem)
		{
			system.GET("", echo)
			system.GET("/controls", echo)
			system.GET("/test-results", echo)
			system.GET("/poams", echo)
			system.GET("/poams/:poamId", echo)
			system.GET("/poams/:poamId/milestones", echo)
			system.GET("/poams/:poamId/milestones/:milestoneId", echo)
			system.GET("/artifacts", echo)
			system.GET("/artifacts-export", exportArtifact)
			system.GET("/approval/cac", echo)
			system.GET("/approval/pac", echo)
			system.GET("/hw-baseline", echo)
			system.GET("/sw-baseline", echo)
		}
	}

	api.GET("/system-roles", echo)
	api.GET("/system-roles/:roleCategory", echo)

	workflows := api.Group("/workflows")
	{
		workflows.GET("/definitions", echo)
		workflows.GET("/instances", echo)
		workflows.GET("/instances/:workflowInstanceId", echo)
	}

	api.GET("/cmmc-assessments", echo)
}

func knownSystem(c *gin.Context) {
	if c.Param("systemId") == MissingSystemID {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"meta": gin.H{"code": http.StatusNotFound, "errorMessage": "System not found"},
		})
		return
	}
	c.Next()
}

func echo(c *gin.Context) {
	params := gin.H{}
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	query := gin.H{}
	for key, values := range c.Request.URL.Query() {
		query[key] = values[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"code": http.StatusOK},
		"data": gin.H{
			"route":  c.FullPath(),
			"path":   c.Request.URL.Path,
			"params": params,
			"query":  query,
		},
	})
}

func exportArtifact(c *gin.Context) {
	c.String(http.StatusOK, "artifact:%s", c.Query("filename"))
}
