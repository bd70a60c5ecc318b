package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/precishq/precis/pkg/api"
)

// Logging returns middleware that emits structured log entries for each
// summarize request. The log entry includes the article ID, requested model,
// duration, request ID (from context), and whether the request succeeded
// or failed. On success it also records the stored summary ID.
//
// Note: The HTTP method and path are not available at the SummaryCreator
// level. For full HTTP-level logging (including status codes), use
// HTTP-level middleware in the adapter.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next SummaryCreator) SummaryCreator {
		return SummaryCreatorFunc(func(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error) {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			sum, err := next.CreateSummary(ctx, articleID, req)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("article_id", articleID),
				slog.String("model", req.Model),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "summarize failed", attrs...)
			} else {
				attrs = append(attrs, slog.String("summary_id", sum.ID))
				logger.LogAttrs(ctx, slog.LevelInfo, "summarize completed", attrs...)
			}

			return sum, err
		})
	}
}
