package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/review"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	ReviewSvc review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewSvc: svc}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)
	if p == nil {
		utils.RespondError(c, &utils.UnauthorizedError{Message: "Unauthorized"})
		return
	}
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	rv, err := h.ReviewSvc.Create(c.Request.Context(), p.TenantID, p.UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}
