package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bidding "auction-engine/internal/bidService"
	proxybid "auction-engine/internal/proxyService"
	handler "auction-engine/services/bidding/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService, proxyEngine *proxybid.Engine, twoPhase bool) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(biddingService, proxyEngine, twoPhase)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.RecordBidHandler)
	}

	proxyBids := router.Group("/proxy-bids")
	{
		proxyBids.POST("", biddingHandler.CreateProxyBidHandler)
		proxyBids.DELETE("/:proxy_bid_id", biddingHandler.CancelProxyBidHandler)
	}

	items := router.Group("/items")
	{
		items.POST("", biddingHandler.CreateItemHandler)
		items.GET("", biddingHandler.GetActiveItemsHandler)
		items.GET("/:item_id/bids", biddingHandler.GetBidsByItemHandler)
		items.GET("/:item_id/winning", biddingHandler.GetWinningBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/items", biddingHandler.GetItemsByUserHandler)
		users.GET("/:user_id/proxy-bids", biddingHandler.GetUserProxyBidsHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
