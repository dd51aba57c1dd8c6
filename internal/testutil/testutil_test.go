package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockWebSocketConn_WriteMessage(t *testing.T) {
	conn := NewMockWebSocketConn()

	err := conn.WriteMessage(1, []byte(`{"type":"test"}`))
	require.NoError(t, err)

	assert.Len(t, conn.Messages, 1)
	assert.Equal(t, []byte(`{"type":"test"}`), conn.LastMessage)
}

func TestMockWebSocketConn_WriteJSON(t *testing.T) {
	conn := NewMockWebSocketConn()

	msg := map[string]string{"type": "test"}
	err := conn.WriteJSON(msg)
	require.NoError(t, err)

	assert.Len(t, conn.Messages, 1)
	result := conn.GetLastMessageAsMap()
	assert.Equal(t, "test", result["type"])
}

func TestMockWebSocketConn_Close(t *testing.T) {
	conn := NewMockWebSocketConn()

	assert.False(t, conn.Closed())

	err := conn.Close()
	require.NoError(t, err)
	assert.True(t, conn.Closed())

	// Closing again should not error
	err = conn.Close()
	require.NoError(t, err)
}

func TestMockS3Client_GetObject(t *testing.T) {
	ctx := context.Background()
	client := NewMockS3Client()
	client.Objects["test-key"] = []byte("test-content")

	data, err := client.GetObject(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-content"), data)

	// Not found
	_, err = client.GetObject(ctx, "nonexistent")
	assert.Error(t, err)
	assert.IsType(t, &ObjectNotFoundError{}, err)
}

func TestMockS3Client_PutObject(t *testing.T) {
	ctx := context.Background()
	client := NewMockS3Client()

	err := client.PutObject(ctx, "test-key", []byte("test-content"), "text/plain")
	require.NoError(t, err)

	assert.Equal(t, []byte("test-content"), client.UploadedData["test-key"])
	assert.Equal(t, "text/plain", client.ContentTypes["test-key"])

	data, err := client.GetObject(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-content"), data)
}

func TestMockS3Client_ListObjects(t *testing.T) {
	client := NewMockS3Client()
	client.Objects["puzzles/a/record.json"] = []byte("data1")
	client.Objects["puzzles/b/record.json"] = []byte("data2")
	client.Objects["other/x.png"] = []byte("data3")

	keys, err := client.ListObjects(context.Background(), "puzzles/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestMockBedrockClient_InvokeModel(t *testing.T) {
	client := NewMockBedrockClient()
	client.Response = "test response"

	response, err := client.InvokeModel(context.Background(), "model-id", "test prompt")
	require.NoError(t, err)
	assert.Equal(t, "test response", response)
	assert.Equal(t, "test prompt", client.LastPrompt)
	assert.Equal(t, "model-id", client.LastModelID)
	assert.Equal(t, 1, client.Calls)
}

func TestClaudeJSON(t *testing.T) {
	assert.JSONEq(t, `{"content":[{"type":"text","text":"hi"}]}`, ClaudeJSON("hi"))
}

func TestTestContext(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/test", nil)

	assert.NotNil(t, tc.Echo)
	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Request)
	assert.NotNil(t, tc.Recorder)
}

func TestTestContextWithJSON(t *testing.T) {
	body := map[string]string{"key": "value"}
	tc := NewTestContextWithJSON(http.MethodPost, "/test", body)

	assert.Equal(t, "application/json", tc.Request.Header.Get("Content-Type"))
}

func TestTestContext_SetCookie(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/test", nil)
	tc.SetCookie("session_id", "test-session")

	cookie, err := tc.Request.Cookie("session_id")
	require.NoError(t, err)
	assert.Equal(t, "test-session", cookie.Value)
}

func TestTestContext_SetParam(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/api/games/abc", nil)
	tc.SetParam("id", "abc")

	assert.Equal(t, "abc", tc.Context.Param("id"))
}

func TestTestContext_GetResponseBody(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/test", nil)
	tc.Recorder.WriteHeader(http.StatusOK)
	_, _ = tc.Recorder.Write([]byte(`{"status":"ok"}`))

	body := tc.GetResponseBody()
	assert.Equal(t, "ok", body["status"])
}

func TestTestContext_GetResponseCode(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/test", nil)
	tc.Recorder.WriteHeader(http.StatusCreated)

	assert.Equal(t, http.StatusCreated, tc.GetResponseCode())
}

func TestTestContext_GetSetCookie(t *testing.T) {
	tc := NewTestContext(http.MethodGet, "/test", nil)
	tc.Context.SetCookie(&http.Cookie{Name: "session_id", Value: "abc"})

	cookie := tc.GetSetCookie("session_id")
	require.NotNil(t, cookie)
	assert.Equal(t, "abc", cookie.Value)
	assert.Nil(t, tc.GetSetCookie("missing"))
}

func TestWaitFor(t *testing.T) {
	counter := 0

	err := WaitFor(100*time.Millisecond, 10*time.Millisecond, func() bool {
		counter++
		return counter >= 3
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, counter, 3)
}

func TestWaitFor_Timeout(t *testing.T) {
	err := WaitFor(50*time.Millisecond, 10*time.Millisecond, func() bool {
		return false // Never true
	})

	assert.Error(t, err)
	assert.IsType(t, &TimeoutError{}, err)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "INVALID_ARGUMENT", ErrCodeInvalidArgument)
	assert.Equal(t, "CANT_FIT", ErrCodeCantFit)
	assert.Equal(t, "NOT_FOUND", ErrCodeNotFound)
	assert.Equal(t, "INTERNAL_ERROR", ErrCodeInternalError)
}
