package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/precishq/precis/pkg/api"
)

func TestCreateAndGetArticle(t *testing.T) {
	art := createArticle(t, "Go 1.25 released", "The Go team released version 1.25 today.")

	if !strings.HasPrefix(art.ID, "art_") {
		t.Errorf("article ID = %q, want art_ prefix", art.ID)
	}
	if art.Object != api.ObjectArticle {
		t.Errorf("object = %q, want %q", art.Object, api.ObjectArticle)
	}
	if art.CreatedAt == 0 {
		t.Error("created_at is zero")
	}

	resp := getURL(t, testEnv.BaseURL()+"/v1/articles/"+art.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET article: got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var got api.Article
	decodeJSON(t, resp, &got)
	if got.ID != art.ID {
		t.Errorf("fetched ID = %q, want %q", got.ID, art.ID)
	}
	if got.Title != "Go 1.25 released" {
		t.Errorf("title = %q, want original title", got.Title)
	}
	if got.Body != "The Go team released version 1.25 today." {
		t.Errorf("body = %q, want original body", got.Body)
	}
}

func TestDeleteArticle(t *testing.T) {
	art := createArticle(t, "Ephemeral piece", "This article will be deleted.")

	resp := deleteURL(t, testEnv.BaseURL()+"/v1/articles/"+art.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE: got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var deleted api.DeletedArticle
	decodeJSON(t, resp, &deleted)
	if deleted.ID != art.ID || !deleted.Deleted {
		t.Errorf("delete confirmation = %+v, want deleted=true for %s", deleted, art.ID)
	}

	// Soft-deleted articles disappear from reads.
	resp = getURL(t, testEnv.BaseURL()+"/v1/articles/"+art.ID)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete: got %d, want 404", resp.StatusCode)
	}
}

func TestListArticles(t *testing.T) {
	first := createArticle(t, "List item one", "Body of the first list article.")
	second := createArticle(t, "List item two", "Body of the second list article.")

	resp := getURL(t, testEnv.BaseURL()+"/v1/articles?limit=100")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var list api.ArticleList
	decodeJSON(t, resp, &list)

	if list.Object != api.ObjectList {
		t.Errorf("list object = %q, want %q", list.Object, api.ObjectList)
	}

	found := map[string]bool{}
	for _, a := range list.Data {
		found[a.ID] = true
	}
	if !found[first.ID] || !found[second.ID] {
		t.Errorf("list is missing created articles: %v", found)
	}
}

func TestListArticlesPagination(t *testing.T) {
	for i := 0; i < 3; i++ {
		createArticle(t, "Paging fixture", "Body used by the pagination test.")
	}

	resp := getURL(t, testEnv.BaseURL()+"/v1/articles?limit=2")
	var page api.ArticleList
	decodeJSON(t, resp, &page)

	if len(page.Data) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Data))
	}
	if !page.HasMore {
		t.Error("has_more = false, want true with more than 2 stored articles")
	}
	if page.LastID != page.Data[1].ID {
		t.Errorf("last_id = %q, want last page entry %q", page.LastID, page.Data[1].ID)
	}

	// The next page starts after the cursor and repeats nothing.
	resp = getURL(t, testEnv.BaseURL()+"/v1/articles?limit=2&after="+page.LastID)
	var next api.ArticleList
	decodeJSON(t, resp, &next)

	seen := map[string]bool{}
	for _, a := range page.Data {
		seen[a.ID] = true
	}
	for _, a := range next.Data {
		if seen[a.ID] {
			t.Errorf("article %s appears on both pages", a.ID)
		}
	}
}

func TestCreateArticleValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"body": "some body"}},
		{"missing body", map[string]any{"title": "some title"}},
		{"blank title", map[string]any{"title": "   ", "body": "some body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, testEnv.BaseURL()+"/v1/articles", tt.body)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("got %d, want 400", resp.StatusCode)
			}

			var errResp api.ErrorResponse
			decodeJSON(t, resp, &errResp)
			if errResp.Error == nil || errResp.Error.Type != api.ErrorTypeInvalidRequest {
				t.Errorf("error = %+v, want invalid_request", errResp.Error)
			}
		})
	}
}
