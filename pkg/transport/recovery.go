package transport

import (
	"context"
	"fmt"

	"github.com/precishq/precis/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to server error responses. The server continues to
// accept new requests after a panic is recovered.
func Recovery() Middleware {
	return func(next SummaryCreator) SummaryCreator {
		return SummaryCreatorFunc(func(ctx context.Context, articleID string, req *api.SummarizeRequest) (sum *api.Summary, retErr error) {
			defer func() {
				if r := recover(); r != nil {
					sum = nil
					retErr = api.NewServerError(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.CreateSummary(ctx, articleID, req)
		})
	}
}
