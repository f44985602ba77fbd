package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListBoycotted godoc
// @Summary Current boycott list
// @Description The five products boycotted this week, ranked by display score
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products/boycotted [get]
func (h *BoycottHandler) ListBoycottedDoc() {}

// ListVotable godoc
// @Summary Votable products
// @Description Boycotted plus active products open to this week's vote, ranked
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products/votable [get]
func (h *BoycottHandler) ListVotableDoc() {}

// CastVote godoc
// @Summary Submit this week's ballot
// @Description One submission per user per week, 1-5 distinct products
// @Tags Votes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_ids=[]string} true "Ballot"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/votes [post]
func (h *BoycottHandler) CastVoteDoc() {}

// GetMyVote godoc
// @Summary My ballot this week
// @Tags Votes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{has_voted=bool,week_id=string}}
// @Router /api/votes/me [get]
func (h *BoycottHandler) GetMyVoteDoc() {}

// LikeProduct godoc
// @Summary Like a product
// @Description One like per user per product per week; returns the new count
// @Tags Likes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object{weekly_likes=int}}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products/{id}/like [post]
func (h *BoycottHandler) LikeProductDoc() {}

// GetMyLikes godoc
// @Summary Products I liked this week
// @Tags Likes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{product_ids=[]string}}
// @Router /api/likes/me [get]
func (h *BoycottHandler) GetMyLikesDoc() {}

// RunRotation godoc
// @Summary Re-run the weekly rotation
// @Description Operator endpoint for retrying a failed scheduled rotation
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{week_id=string,winner_ids=[]string}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/rotation [post]
func (h *BoycottHandler) RunRotationDoc() {}

// GetStats godoc
// @Summary Weekly statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/stats [get]
func (h *BoycottHandler) GetStatsDoc() {}
