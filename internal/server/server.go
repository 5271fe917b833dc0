package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe/internal/api/controller"
	"wardrobe/internal/api/middleware"
	"wardrobe/web"
)

// Server owns the gin engine and wires the routes to their controllers.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the gin engine with all routes, templates and static
// assets registered.
func NewServer(auth *middleware.Auth, users *controller.UserController, items *controller.ItemController) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestTrace())

	engine.SetHTMLTemplate(web.Templates())

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		// The embed is part of the binary; a missing subtree is a build defect.
		panic(err)
	}
	engine.StaticFS("/static", http.FS(staticFS))

	engine.GET("/", auth.CurrentUser(), users.Home)
	engine.GET("/login", auth.CurrentUser(), users.LoginPage)
	engine.POST("/login", users.Login)
	engine.GET("/register", users.RegisterPage)
	engine.POST("/register", users.Register)
	engine.POST("/logout", users.Logout)

	protected := engine.Group("/", auth.RequireUser())
	protected.GET("/wardrobe", items.WardrobePage)
	protected.POST("/add-item", items.AddItem)
	protected.POST("/update-item", items.UpdateItem)
	protected.DELETE("/delete-item/:id", items.DeleteItem)
	protected.GET("/filter-items", items.FilterItems)
	protected.GET("/generate-outfit", items.GenerateOutfit)

	// The JSON API resolves the user itself so it can answer
	// unauthenticated calls with its own payload instead of a redirect.
	engine.GET("/api/items", auth.CurrentUser(), items.APIItems)

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
