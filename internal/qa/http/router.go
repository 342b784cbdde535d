package http

import "github.com/gin-gonic/gin"

// Register mounts the Q&A routes. write runs in front of every mutating route
// (identity requirement, rate limiting).
func (h *Handler) Register(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	rg.GET("/tags", h.ListTags)
	rg.GET("/feed/events", h.StreamFeed)

	questions := rg.Group("/questions")
	questions.GET("", h.ListQuestions)
	questions.GET("/:id", h.GetQuestion)
	questions.GET("/:id/responses", h.ListResponses)
	questions.GET("/:id/responses/events", h.StreamResponses)

	questions.POST("", chain(write, h.CreateQuestion)...)
	questions.POST("/:id/responses", chain(write, h.CreateResponse)...)
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), h)
}
