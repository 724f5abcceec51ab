package api

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justyntemme/bookshelf/internal/auth"
)

// NewRouter wires every route. Pages, the JSON API and OPDS feeds all run
// under the profile middleware; health and metrics do not.
func NewRouter(h *Handler, signer *auth.Signer, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(), Metrics(), CORS())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	site := r.Group("")
	site.Use(auth.ProfileMiddleware(signer))
	{
		// Pages
		site.GET("/", h.CatalogPage)
		site.GET("/book", h.DetailPage)
		site.GET("/wishlist", h.WishlistPage)
		site.POST("/wishlist/:id/toggle", h.ToggleWishlist)
		site.POST("/wishlist/:id/remove", h.RemoveFromWishlist)

		// OPDS
		site.GET("/opds/catalog.xml", h.OPDSCatalog)
		site.GET("/opds/books.xml", h.OPDSBooks)
		site.GET("/opds/wishlist.xml", h.OPDSWishlist)
	}

	apiGroup := site.Group("/api")
	{
		apiGroup.GET("", h.APIInfo)

		apiGroup.GET("/books", h.ListBooks)
		apiGroup.GET("/books/:id", h.GetBook)
		apiGroup.GET("/genres", h.ListGenres)

		apiGroup.GET("/wishlist", h.GetWishlist)
		apiGroup.POST("/wishlist/:id", h.ToggleWishlistJSON)
		apiGroup.DELETE("/wishlist/:id", h.RemoveFromWishlistJSON)
	}

	return r
}
