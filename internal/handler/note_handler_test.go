package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return perform(r, req)
}

func putJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return perform(r, req)
}

func createNote(t *testing.T, r *gin.Engine, content string, tags []string) uint {
	t.Helper()
	body := gin.H{"content": base64.StdEncoding.EncodeToString([]byte(content))}
	if tags != nil {
		body["tags"] = tags
	}
	w := postJSON(r, "/notes/create/", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		NoteID uint `json:"note_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.NoteID
}

func TestCreateNoteEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	content := "# 今天的日記\n\n吃了拉麵。"
	w := postJSON(r, "/notes/create/", gin.H{
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"tags":    []string{"diary", "food"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message       string `json:"message"`
		NoteID        uint   `json:"note_id"`
		ContentLength int    `json:"content_length"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Markdown saved to database successfully!", resp.Message)
	assert.NotZero(t, resp.NoteID)
	// 长度按 Unicode 字符数计算而不是字节数
	assert.Equal(t, 14, resp.ContentLength)
}

func TestCreateNoteMissingContent(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/notes/create/", gin.H{"tags": []string{"diary"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing content field")
}

func TestCreateNoteInvalidBase64(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/notes/create/", gin.H{"content": "not-valid-base64!!!"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid base64 content")
}

func TestCreateNoteEmptyAfterDecoding(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/notes/create/", gin.H{"content": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Empty content after decoding")
}

func TestGetNoteEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	noteID := createNote(t, r, "hello world", []string{"greeting"})

	w := perform(r, httptest.NewRequest(http.MethodGet, "/notes/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Note struct {
			ID      uint     `json:"id"`
			Content string   `json:"content"`
			Tags    []string `json:"tags"`
		} `json:"note"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, noteID, resp.Note.ID)
	assert.Equal(t, "hello world", resp.Note.Content)
	assert.Equal(t, []string{"greeting"}, resp.Note.Tags)
}

func TestGetNoteNotFoundEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := perform(r, httptest.NewRequest(http.MethodGet, "/notes/9999", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Note not found")
}

func TestListNotesEndpointFiltersByTag(t *testing.T) {
	r, _ := newTestRouter(t)
	createNote(t, r, "work note", []string{"work"})
	createNote(t, r, "hobby note", []string{"hobby"})

	w := perform(r, httptest.NewRequest(http.MethodGet, "/notes/all/?tag=work", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notes []struct {
			Content string `json:"content"`
		} `json:"notes"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "work note", resp.Notes[0].Content)
	assert.Equal(t, int64(1), resp.Total)
}

func TestUpdateNoteEndpointKeepsTagsWhenOmitted(t *testing.T) {
	r, _ := newTestRouter(t)
	noteID := createNote(t, r, "before", []string{"keep"})

	w := putJSON(r, "/notes/1", gin.H{
		"content": base64.StdEncoding.EncodeToString([]byte("after")),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Note updated successfully")

	w = perform(r, httptest.NewRequest(http.MethodGet, "/notes/1", nil))
	var resp struct {
		Note struct {
			ID      uint     `json:"id"`
			Content string   `json:"content"`
			Tags    []string `json:"tags"`
		} `json:"note"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, noteID, resp.Note.ID)
	assert.Equal(t, "after", resp.Note.Content)
	assert.Equal(t, []string{"keep"}, resp.Note.Tags)
}

func TestUpdateNoteEndpointNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := putJSON(r, "/notes/9999", gin.H{
		"content": base64.StdEncoding.EncodeToString([]byte("anything")),
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Note not found")
}

func TestDeleteNoteEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	createNote(t, r, "to delete", nil)

	w := perform(r, httptest.NewRequest(http.MethodDelete, "/notes/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Note deleted successfully")

	w = perform(r, httptest.NewRequest(http.MethodGet, "/notes/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := perform(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
