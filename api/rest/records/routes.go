package records

import (
	"github.com/gin-gonic/gin"
)

// router is expected to carry the auth middleware
func RegisterRoutes(router *gin.RouterGroup, store Store) {
	router.GET("/transactions", ListTransactionsHandler(store))
	router.POST("/transactions", CreateTransactionHandler(store))
	router.DELETE("/transactions/:id", DeleteTransactionHandler(store))

	router.GET("/assets", ListAssetsHandler(store))
	router.DELETE("/assets/:id", DeleteAssetHandler(store))

	router.GET("/strategies", ListStrategiesHandler(store))

	router.GET("/export", ExportHandler(store))
}
