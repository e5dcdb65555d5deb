package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShareEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusOK, uploadFile(t, r, "photo.png", []byte("fake png bytes")).Code)

	w := perform(r, httptest.NewRequest(http.MethodPost, "/share/create/1", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ShareCode string `json:"share_code"`
		URL       string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ShareCode)
	assert.Equal(t, "/share/"+resp.ShareCode, resp.URL)
}

func TestCreateShareFileNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := perform(r, httptest.NewRequest(http.MethodPost, "/share/create/9999", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "File not found")
}

func TestResolveShareRedirectsToDownload(t *testing.T) {
	r, _ := newTestRouter(t)

	content := []byte("fake png bytes")
	uw := uploadFile(t, r, "photo.png", content)
	require.Equal(t, http.StatusOK, uw.Code)
	var upload uploadResponse
	require.NoError(t, json.Unmarshal(uw.Body.Bytes(), &upload))

	w := perform(r, httptest.NewRequest(http.MethodPost, "/share/create/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var share struct {
		ShareCode string `json:"share_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))

	// 分享码解析为 303 重定向，所有分类都指向统一的下载路径
	w = perform(r, httptest.NewRequest(http.MethodGet, "/share/"+share.ShareCode, nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/files/download/"+upload.Filename, w.Header().Get("Location"))

	// 跟随重定向可以取回原始内容
	w = perform(r, httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
}

func TestResolveShareUnknownCode(t *testing.T) {
	r, _ := newTestRouter(t)

	w := perform(r, httptest.NewRequest(http.MethodGet, "/share/unknown-code", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Shared file not found")
}

func TestShareSurvivesDuplicateUpload(t *testing.T) {
	r, _ := newTestRouter(t)

	content := []byte("same bytes twice")
	require.Equal(t, http.StatusOK, uploadFile(t, r, "first.png", content).Code)
	require.Equal(t, http.StatusOK, uploadFile(t, r, "second.png", content).Code)

	// 分享第二条目录记录，解析后仍指向同一个物理对象
	w := perform(r, httptest.NewRequest(http.MethodPost, "/share/create/2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var share struct {
		ShareCode string `json:"share_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &share))

	w = perform(r, httptest.NewRequest(http.MethodGet, "/share/"+share.ShareCode, nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = perform(r, httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
}
