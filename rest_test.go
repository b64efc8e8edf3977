package yumlog

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	server := &Server{Silence: true}
	server.Start("localhost:0")
	t.Cleanup(func() { server.Close(os.Interrupt) })
	return server
}

func post(t *testing.T, server *Server, path, body string) (int, string) {
	t.Helper()
	resp, err := http.Post("http://"+server.Address+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func get(t *testing.T, server *Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get("http://" + server.Address + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRecordCommand(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/commands/record", `{"fps":"25","duration":"15","outFile":"./test.mp4"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, `.\launchers\record.ps1 -Fps 25 -DurationSec 15 -OutFile "./test.mp4"`, gjson.Get(body, "command").String())
}

func TestCaptureCommand(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/commands/capture", `{"fps":"5","duration":"30"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, `.\launchers\capture.ps1 -Fps 5 -DurationSec 30`, gjson.Get(body, "command").String())
}

func TestCommandBadRequest(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/commands/record", `{`)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, gjson.Get(body, "error").String())

	status, body = post(t, server, "/api/commands/capture", ``)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, ErrEmptyBody.Error(), gjson.Get(body, "error").String())
}

func TestStatistics(t *testing.T) {
	server := startServer(t)
	status, body := get(t, server, "/api/statistics")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(0), gjson.Get(body, "count").Int())
	require.Equal(t, float64(0), gjson.Get(body, "totalSizeMB").Float())
	require.Equal(t, "", gjson.Get(body, "latest").String())

	status, body = get(t, server, "/api/statistics/refresh")
	require.Equal(t, http.StatusOK, status)
	message := gjson.Get(body, "message").String()
	require.Contains(t, message, "yumlog.ps1 count")
	require.Contains(t, message, "yumlog.ps1 size")
	require.Contains(t, message, "yumlog.ps1 get")
}

func TestBrowseRecordings(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/recordings/browse", `{"directory":"./my-yumlogs"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "To browse recordings:", gjson.Get(body, "title").String())
	require.Equal(t, "./my-yumlogs", gjson.Get(body, "directory").String())
	require.True(t, gjson.Get(body, "steps.#").Int() > 0)
}

func TestRecordingsEmptyDirectory(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/recordings/browse", `{"directory":""}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, gjson.Get(body, "directory").Exists())
	require.Equal(t, "", gjson.Get(body, "directory").String())

	status, body = post(t, server, "/api/recordings/open", `{"directory":""}`)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, gjson.Get(body, "message").String(), `explorer ""`)
}

func TestOpenFolder(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/recordings/open", `{"directory":"./test-folder"}`)
	require.Equal(t, http.StatusOK, status)
	message := gjson.Get(body, "message").String()
	require.Contains(t, message, "explorer")
	require.Contains(t, message, "./test-folder")
}

func TestLoadConfig(t *testing.T) {
	server := startServer(t)
	status, body := get(t, server, "/api/config")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, gjson.Get(body, "message").String(), "yumlog.ps1 config")
	config := gjson.Get(body, "config").String()
	require.Contains(t, config, `"capture"`)
	require.Contains(t, config, `"record"`)
	require.Contains(t, config, `"defaultFps"`)
}

func TestSaveConfig(t *testing.T) {
	server := startServer(t)
	status, body := post(t, server, "/api/config/save", `{"config":"{\"record\":{\"defaultFps\":30}}"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "To save the configuration:", gjson.Get(body, "heading").String())
	require.Equal(t, `config\tools.json`, gjson.Get(body, "target").String())
	require.Contains(t, gjson.Get(body, "command").String(), `config\tools.json`)
}

func TestSaveConfigEmpty(t *testing.T) {
	server := startServer(t)
	for _, payload := range []string{`{"config":""}`, `{"config":"   "}`, `{}`, ``} {
		status, body := post(t, server, "/api/config/save", payload)
		require.Equal(t, http.StatusBadRequest, status, payload)
		require.Equal(t, "Please load or enter configuration first", gjson.Get(body, "error").String())
		require.False(t, gjson.Get(body, "heading").Exists())
	}
}

func TestPage(t *testing.T) {
	server := startServer(t)
	status, body := get(t, server, "/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "<title>Yumlog Manager</title>")
	require.Contains(t, body, `id="darkModeToggle"`)
	require.Contains(t, body, `data-dark-mode-key="darkMode"`)
	require.Contains(t, body, `value="30"`)
	require.Contains(t, body, `value="./yumlogs/yumlog.mp4"`)
	require.Contains(t, body, `value="./yumlogs"`)
	require.NotContains(t, body, "404")
	require.NotContains(t, body, "Error")
}

func TestPageDefaults(t *testing.T) {
	server := &Server{Silence: true, Name: "Capture Desk"}
	server.Defaults.Record.FPS = "60"
	server.Defaults.RecordingsDir = "./captures"
	server.Start("localhost:0")
	defer server.Close(os.Interrupt)

	status, body := get(t, server, "/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "<title>Capture Desk</title>")
	require.Contains(t, body, `id="fps" value="60"`)
	require.Contains(t, body, `id="recordingsDir" value="./captures"`)
}

func TestStaticAssets(t *testing.T) {
	server := startServer(t)
	for path, contains := range map[string]string{
		"/styles.css":  "dark-mode",
		"/manager.js":  "darkModeToggle",
		"/favicon.svg": "<svg",
	} {
		status, body := get(t, server, path)
		require.Equal(t, http.StatusOK, status, path)
		require.Contains(t, body, contains, path)
	}
}
