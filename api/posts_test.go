package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feather-works/feather-backend/model"
)

func TestCreatePostIgnoresClientSuppliedAuthor(t *testing.T) {
	router, db := newTestEnv(t)
	userA, tokenA := createTestUser(t, db, "alice")
	createTestUser(t, db, "mallory")

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/", tokenA, map[string]interface{}{
		"text":   "hello world",
		"author": "mallory",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PostResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice", resp.Author)
	assert.Equal(t, "hello world", resp.Text)
	assert.False(t, resp.PubDate.IsZero())

	var stored model.Post
	require.NoError(t, db.First(&stored, resp.Id).Error)
	assert.Equal(t, userA.Id, stored.AuthorID)
}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	router, _ := newTestEnv(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/", "", map[string]interface{}{
		"text": "anonymous rant",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostValidation(t *testing.T) {
	router, db := newTestEnv(t)
	_, token := createTestUser(t, db, "alice")

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/", token, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errs map[string][]string
	decodeBody(t, w, &errs)
	assert.Equal(t, []string{"This field is required."}, errs["text"])

	w = doRequest(t, router, http.MethodPost, "/api/v1/posts/", token, map[string]interface{}{
		"text": "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &errs)
	assert.Equal(t, []string{"This field may not be blank."}, errs["text"])

	w = doRequest(t, router, http.MethodPost, "/api/v1/posts/", token, map[string]interface{}{
		"text":  "ok",
		"group": "no-such-group",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &errs)
	require.Len(t, errs["group"], 1)
	assert.Contains(t, errs["group"][0], "does not exist")
}

func TestRetrievePostNotFound(t *testing.T) {
	router, _ := newTestEnv(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/posts/999/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/posts/not-a-number/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePostForbiddenForNonAuthor(t *testing.T) {
	router, db := newTestEnv(t)
	userA, _ := createTestUser(t, db, "alice")
	_, tokenB := createTestUser(t, db, "bob")

	post := model.Post{Text: "hi", AuthorID: userA.Id}
	require.NoError(t, db.Create(&post).Error)

	w := doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenB,
		map[string]interface{}{"text": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.Id).Error)
	assert.Equal(t, "hi", stored.Text)
}

func TestUpdatePostFullAndPartial(t *testing.T) {
	router, db := newTestEnv(t)
	userA, tokenA := createTestUser(t, db, "alice")

	group := model.Group{Title: "News", Slug: "news", Description: "daily"}
	require.NoError(t, db.Create(&group).Error)
	post := model.Post{Text: "original", AuthorID: userA.Id, GroupID: &group.Id}
	require.NoError(t, db.Create(&post).Error)

	// PUT without text fails, PATCH without text keeps it.
	w := doRequest(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenA,
		map[string]interface{}{"group": "news"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenA,
		map[string]interface{}{"group": nil})
	require.Equal(t, http.StatusOK, w.Code)

	var resp PostResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "original", resp.Text)
	assert.Nil(t, resp.Group)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.Id).Error)
	assert.Nil(t, stored.GroupID)

	w = doRequest(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenA,
		map[string]interface{}{"text": "rewritten", "group": "news"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, "rewritten", resp.Text)
	require.NotNil(t, resp.Group)
	assert.Equal(t, "news", *resp.Group)
}

func TestUpdatePostKeepsPubDate(t *testing.T) {
	router, db := newTestEnv(t)
	userA, tokenA := createTestUser(t, db, "alice")

	pubDate := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	post := model.Post{Text: "hi", AuthorID: userA.Id, PubDate: pubDate}
	require.NoError(t, db.Create(&post).Error)

	w := doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenA,
		map[string]interface{}{"text": "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.Id).Error)
	assert.True(t, stored.PubDate.Equal(pubDate))
	assert.Equal(t, "edited", stored.Text)
}

func TestDeletePostCascadesComments(t *testing.T) {
	router, db := newTestEnv(t)
	userA, tokenA := createTestUser(t, db, "alice")

	post := model.Post{Text: "hi", AuthorID: userA.Id}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&model.Comment{Text: "first", AuthorID: userA.Id, PostID: post.Id}).Error)
	require.NoError(t, db.Create(&model.Comment{Text: "second", AuthorID: userA.Id, PostID: post.Id}).Error)

	w := doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/posts/%d/", post.Id), tokenA, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.Id).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListPostsOrderAndPagination(t *testing.T) {
	router, db := newTestEnv(t)
	userA, _ := createTestUser(t, db, "alice")

	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := model.Post{
			Text:     fmt.Sprintf("post %d", i),
			AuthorID: userA.Id,
			PubDate:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&post).Error)
	}

	// Without limit: bare array, pub_date ascending.
	w := doRequest(t, router, http.MethodGet, "/api/v1/posts/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []PostResponse
	decodeBody(t, w, &all)
	require.Len(t, all, 3)
	assert.Equal(t, "post 0", all[0].Text)
	assert.Equal(t, "post 2", all[2].Text)

	// First page.
	w = doRequest(t, router, http.MethodGet, "/api/v1/posts/?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paged struct {
		Count    int64          `json:"count"`
		Next     *string        `json:"next"`
		Previous *string        `json:"previous"`
		Results  []PostResponse `json:"results"`
	}
	decodeBody(t, w, &paged)
	assert.EqualValues(t, 3, paged.Count)
	require.NotNil(t, paged.Next)
	assert.Contains(t, *paged.Next, "offset=2")
	assert.Nil(t, paged.Previous)
	require.Len(t, paged.Results, 2)

	// Second page.
	w = doRequest(t, router, http.MethodGet, "/api/v1/posts/?limit=2&offset=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &paged)
	assert.Nil(t, paged.Next)
	require.NotNil(t, paged.Previous)
	assert.True(t, strings.Contains(*paged.Previous, "limit=2"))
	require.Len(t, paged.Results, 1)
	assert.Equal(t, "post 2", paged.Results[0].Text)

	// Bad limit is a validation failure, not a crash.
	w = doRequest(t, router, http.MethodGet, "/api/v1/posts/?limit=banana", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostImageUploadAndClear(t *testing.T) {
	router, db := newTestEnv(t)
	_, tokenA := createTestUser(t, db, "alice")

	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/", tokenA, map[string]interface{}{
		"text":  "with picture",
		"image": payload,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PostResponse
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.Image)
	assert.True(t, strings.HasPrefix(*resp.Image, "/media/posts/"))
	assert.True(t, strings.HasSuffix(*resp.Image, ".png"))

	w = doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/posts/%d/", resp.Id), tokenA,
		map[string]interface{}{"image": nil})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Nil(t, resp.Image)

	// Garbage payloads are rejected per-field.
	w = doRequest(t, router, http.MethodPost, "/api/v1/posts/", tokenA, map[string]interface{}{
		"text":  "bad picture",
		"image": "!!not-base64!!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errs map[string][]string
	decodeBody(t, w, &errs)
	assert.Equal(t, []string{"Upload a valid image."}, errs["image"])
}

func TestEndToEndScenario(t *testing.T) {
	router, db := newTestEnv(t)
	_, tokenA := createTestUser(t, db, "A")
	_, tokenB := createTestUser(t, db, "B")

	require.NoError(t, db.Create(&model.Group{Title: "News", Slug: "news"}).Error)

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/", tokenA, map[string]interface{}{
		"text":  "hi",
		"group": "news",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PostResponse
	decodeBody(t, w, &created)

	w = doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/posts/%d/", created.Id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched PostResponse
	decodeBody(t, w, &fetched)
	assert.Equal(t, "hi", fetched.Text)
	assert.Equal(t, "A", fetched.Author)
	require.NotNil(t, fetched.Group)
	assert.Equal(t, "news", *fetched.Group)

	w = doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/posts/%d/", created.Id), tokenB,
		map[string]interface{}{"text": "bye"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored model.Post
	require.NoError(t, db.First(&stored, created.Id).Error)
	assert.Equal(t, "hi", stored.Text)
}
