package dataview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dataview-lab/dataview-go/filter"
	"github.com/dataview-lab/dataview-go/internal/cache"
	"github.com/dataview-lab/dataview-go/internal/metrics"
	"github.com/dataview-lab/dataview-go/internal/recovery"
	"github.com/dataview-lab/dataview-go/query"
)

type searchRequest struct {
	Columns []string        `json:"columns,omitempty"`
	Filters json.RawMessage `json:"filters,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

type bookmarkRequest struct {
	Name    string          `json:"name"`
	Filters json.RawMessage `json:"filters,omitempty"`
	Columns []string        `json:"columns,omitempty"`
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dataset": s.exec.Name(),
		"hash":    s.exec.Hash(),
		"config":  s.view,
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search request: " + err.Error()})
			return
		}
	}

	var where string
	if len(req.Filters) > 0 {
		f, err := filter.Parse(req.Filters)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters: " + err.Error()})
			return
		}
		where = s.encoder.EncodeFilters(f)
	}

	cols, ok := s.view.visibleColumns(req.Columns)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no visible columns selected"})
		return
	}

	res, err := s.runQuery(c, searchSQL(cols, where, req.Limit, req.Offset))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSchema(c *gin.Context) {
	res, err := s.runQuery(c, "SELECT * FROM "+query.ViewName+" LIMIT 0")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schema": res.Schema,
		"hidden": s.view.HiddenColumns,
	})
}

// handleFacets returns the distinct values of each configured facet
// column, capped per column.
func (s *Server) handleFacets(c *gin.Context) {
	const facetLimit = 100

	facets := make(map[string][]any, len(s.view.FacetColumns))
	for _, name := range s.view.FacetColumns {
		sqlText := fmt.Sprintf("SELECT DISTINCT %s AS value FROM %s WHERE %s IS NOT NULL ORDER BY value LIMIT %d",
			selectClause([]string{name}), query.ViewName, selectClause([]string{name}), facetLimit)
		res, err := s.runQuery(c, sqlText)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		values := make([]any, 0, len(res.Rows))
		for _, row := range res.Rows {
			values = append(values, row["value"])
		}
		facets[name] = values
	}
	c.JSON(http.StatusOK, gin.H{"facets": facets})
}

// runQuery executes sqlText through the result cache, guarding the
// executor against panics in driver code.
func (s *Server) runQuery(c *gin.Context, sqlText string) (*query.Result, error) {
	var key string
	if s.cache != nil {
		key = cache.Key(s.exec.Hash(), sqlText)
		var cached query.Result
		hit, err := s.cache.Get(key, &cached)
		if err != nil {
			s.logger.Warn("cache lookup failed", "error", err)
		}
		if hit {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	res, err := recovery.ToValue(s.logger, "query", func() (*query.Result, error) {
		return s.exec.Query(c.Request.Context(), sqlText)
	})
	if err != nil {
		metrics.QueryTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.QueryTotal.WithLabelValues("ok").Inc()

	if s.cache != nil {
		if err := s.cache.Put(key, res); err != nil {
			s.logger.Warn("cache store failed", "error", err)
		}
	}
	return res, nil
}

// searchSQL renders the search statement for the dataset view.
func searchSQL(cols []string, where string, limit, offset int) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectClause(cols))
	b.WriteString(" FROM ")
	b.WriteString(query.ViewName)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	b.WriteString(" LIMIT ")
	b.WriteString(strconv.Itoa(limit))
	if offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(offset))
	}
	return b.String()
}

func (s *Server) handleBookmarkCreate(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookmark: " + err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookmark name is required"})
		return
	}
	b := s.bookmarks.Add(req.Name, req.Filters, req.Columns)
	c.JSON(http.StatusCreated, b)
}

func (s *Server) handleBookmarkList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookmarks": s.bookmarks.List()})
}

func (s *Server) handleBookmarkGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookmark id"})
		return
	}
	b, err := s.bookmarks.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) handleBookmarkDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookmark id"})
		return
	}
	if err := s.bookmarks.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBookmarkExport(c *gin.Context) {
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", `attachment; filename="bookmarks.dvb"`)
	if err := s.bookmarks.Export(c.Writer); err != nil {
		s.logger.Error("bookmark export failed", "error", err)
	}
}

func (s *Server) handleBookmarkImport(c *gin.Context) {
	n, err := s.bookmarks.Import(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookmark archive: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}
