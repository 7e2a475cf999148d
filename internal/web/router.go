// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package web

import "github.com/gin-gonic/gin"

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	r.Use(gin.Recovery())

	r.GET("/", s.handlePage)
	r.GET("/healthz", s.handleHealth)
	r.GET("/charts/:file", s.handleChart)
	r.GET("/export/:name", s.handleExport)

	api := r.Group("/api")
	{
		api.GET("/analyses", s.handleListAnalyses)
		api.GET("/analyses/:name", s.handleGetAnalysis)
		api.GET("/analyses/:name/insight", s.handleInsight)
		api.GET("/dataset", s.handleDataset)
		api.POST("/dataset/reload", s.handleReload)
	}

	return r
}
