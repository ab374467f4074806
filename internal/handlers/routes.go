package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is one entry of the API's route table.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler gin.HandlerFunc
}

// Routes returns the complete route table for the server.
func (s *Server) Routes() []Route {
	routes := []Route{
		{"Health", http.MethodGet, "/health", s.HandleHealth()},

		{"ListUsers", http.MethodGet, "/users", s.HandleListUsers()},
		{"GetUser", http.MethodGet, "/users/:user_id", s.HandleGetUser()},
		{"CreateUser", http.MethodPost, "/users", s.HandleCreateUser()},

		{"ListSubreddits", http.MethodGet, "/subreddits", s.HandleListSubreddits()},
		{"CreateSubreddit", http.MethodPost, "/subreddits", s.HandleCreateSubreddit()},

		{"ListThreads", http.MethodGet, "/threads", s.HandleListThreads()},
		{"CreateThread", http.MethodPost, "/threads/:subreddit_id", s.HandleCreateThread()},
		{"DeleteThread", http.MethodDelete, "/threads/:thread_id", s.HandleDeleteThread()},
	}

	if s.Boards != nil {
		routes = append(routes, Route{"Feed", http.MethodGet, "/r/:topic", s.HandleFeed()})
	}
	if s.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/metrics", s.HandleMetrics()})
	}
	return routes
}

// ValidateRoutes rejects tables that would register the same method and path
// shape twice, or that name a parameter differently at one position.
func ValidateRoutes(routes []Route) error {
	shapes := make(map[string]string)
	params := make(map[string]string)

	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("route %s has no handler", route.Name)
		}
		if !strings.HasPrefix(route.Pattern, "/") {
			return fmt.Errorf("route %s: pattern %q must start with /", route.Name, route.Pattern)
		}

		segments := strings.Split(strings.Trim(route.Pattern, "/"), "/")
		normalized := make([]string, len(segments))
		for i, segment := range segments {
			normalized[i] = segment
			if !isParam(segment) {
				continue
			}
			normalized[i] = ":"

			prefix := route.Method + " /" + strings.Join(normalized[:i], "/")
			if other, ok := params[prefix]; ok && other != segment {
				return fmt.Errorf("route %s: parameter %s conflicts with %s at %s", route.Name, segment, other, prefix)
			}
			params[prefix] = segment
		}

		key := route.Method + " /" + strings.Join(normalized, "/")
		if other, ok := shapes[key]; ok {
			return fmt.Errorf("route %s duplicates route %s (%s)", route.Name, other, key)
		}
		shapes[key] = route.Name
	}
	return nil
}

// Register validates routes and adds them to router.
func Register(router gin.IRoutes, routes []Route) error {
	if err := ValidateRoutes(routes); err != nil {
		return err
	}
	for _, route := range routes {
		router.Handle(route.Method, route.Pattern, route.Handler)
	}
	return nil
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*")
}
