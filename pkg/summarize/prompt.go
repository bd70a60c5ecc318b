package summarize

import (
	"fmt"

	"github.com/precishq/precis/pkg/api"
)

// promptTemplate frames the task for the model. The attached schema
// enforces the output shape; the prompt carries the editorial guidance.
const promptTemplate = `Summarize the following article. Respond with a JSON object containing:
- "headline": a single sentence capturing the article's core claim
- "abstract": a neutral 2-3 sentence summary
- "key_points": the main points as short standalone statements
- "topics": lowercase topic tags, most specific first

Title: %s

%s`

// buildPrompt renders the instruction block followed by the article text.
func buildPrompt(article *api.Article) string {
	return fmt.Sprintf(promptTemplate, article.Title, article.Body)
}
