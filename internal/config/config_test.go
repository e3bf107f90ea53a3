package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", envMap(map[string]string{DirEnv: dir}))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultWebURL, cfg.WebURL)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.Cache.Path)
	assert.Equal(t, filepath.Join(dir, "lingofriends.log"), cfg.LogFile)
	assert.False(t, cfg.Cache.Disabled)
	assert.Equal(t, DefaultMaxRetries, cfg.Retries())
	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, d)
}

func TestLoad_YAMLFileFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
api_url: https://api.example.com
token: from-file
http:
  timeout: 3s
  max_retries: 0
ui:
  columns: 2
`)
	cfg, err := Load("", envMap(map[string]string{DirEnv: dir}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "from-file", cfg.Token)
	assert.Equal(t, DefaultWebURL, cfg.WebURL, "unset fields keep defaults")
	assert.Equal(t, 0, cfg.Retries(), "explicit zero retries is honoured")
	assert.Equal(t, 2, cfg.UI.Columns)
	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "custom.toml", `
api_url = "https://toml.example.com"
web_url = "https://web.example.com"

[cache]
disabled = true
`)
	cfg, err := Load(p, envMap(map[string]string{DirEnv: dir}))
	require.NoError(t, err)
	assert.Equal(t, "https://toml.example.com", cfg.APIURL)
	assert.Equal(t, "https://web.example.com", cfg.WebURL)
	assert.True(t, cfg.Cache.Disabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "api_url: https://file.example.com\ntoken: file\n")
	cfg, err := Load("", envMap(map[string]string{
		DirEnv:     dir,
		APIURLEnv:  "https://env.example.com",
		TokenEnv:   "env-token",
		NoCacheEnv: "yes",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.True(t, cfg.Cache.Disabled)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nope.yaml"), envMap(map[string]string{DirEnv: dir}))
	require.Error(t, err)
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.json", `{}`)
	_, err := LoadFile(p)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_ParseError(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "api_url: [unclosed")
	_, err := LoadFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	base := Default(t.TempDir())
	require.NoError(t, base.Validate())

	bad := base
	bad.HTTP.Timeout = "soon"
	assert.Error(t, bad.Validate())

	bad = base
	bad.HTTP.Timeout = "-1s"
	assert.Error(t, bad.Validate())

	bad = base
	n := -1
	bad.HTTP.MaxRetries = &n
	assert.Error(t, bad.Validate())

	bad = base
	bad.UI.Columns = 4
	assert.Error(t, bad.Validate())

	bad = base
	bad.APIURL = ""
	assert.Error(t, bad.Validate())
}
