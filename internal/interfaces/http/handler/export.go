package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/infrastructure/export"
)

type listFunc[T any] func(ctx context.Context, filter appledger.LedgerListFilter) ([]T, int64, error)

// collectAll pages through list with the largest allowed page until every
// row matching filter is loaded.
func collectAll[T any](ctx context.Context, list listFunc[T], filter appledger.LedgerListFilter, pageSize int) ([]T, error) {
	filter.Limit = pageSize
	var all []T
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := list(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

// sendWorkbook renders rows into a single-sheet workbook and sends it as an
// attachment named <prefix>-<date>.xlsx
func sendWorkbook[T any](c *gin.Context, prefix, sheet string, columns []export.Column[T], rows []T) error {
	var buf bytes.Buffer
	if err := export.WriteSheet(&buf, sheet, columns, rows); err != nil {
		return fmt.Errorf("render %s export: %w", prefix, err)
	}
	filename := fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
	return nil
}
