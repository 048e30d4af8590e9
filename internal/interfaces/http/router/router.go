package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts one ledger area on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts the authenticated ledger API under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion replaces the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware runs middleware on every API route ahead of the
// registrars' own group middleware. Health probes are not affected.
func WithAPIMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, middleware...)
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Prefix is the path every API route is mounted under
func (r *Router) Prefix() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registrar and returns the API routes now served
func (r *Router) Setup() gin.RoutesInfo {
	api := r.engine.Group(r.Prefix(), r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	var mounted gin.RoutesInfo
	for _, route := range r.engine.Routes() {
		if strings.HasPrefix(route.Path, r.Prefix()+"/") {
			mounted = append(mounted, route)
		}
	}
	return mounted
}
