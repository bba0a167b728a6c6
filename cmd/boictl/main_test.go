package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testConfig = `
boi:
  sap:
    enabled: false
  picture:
    enabled: false
  sms:
    enabled: false
  srhr:
    enabled: false
  card_fields:
    id_number: TZ
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFieldsCmd(t *testing.T) {
	cfgPath := writeFile(t, "boi-proxy.yaml", testConfig)

	out, err := run(t, "fields", "--config", cfgPath)
	require.NoError(t, err)

	var doc map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "TZ", doc["card_fields"]["id_number"])
	assert.Equal(t, "PhotoBase64", doc["card_fields"]["photo_base64"])
}

func TestCallbackCmd_NoOpOperation(t *testing.T) {
	cfgPath := writeFile(t, "boi-proxy.yaml", testConfig)
	cardPath := writeFile(t, "card.json", `{"TZ":"123456782"}`)

	out, err := run(t, "callback", "--config", cfgPath, "--operation", "DELETE", "--card-data", cardPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
}

func TestCallbackCmd_BlockingFailureExitsNonZero(t *testing.T) {
	cfgPath := writeFile(t, "boi-proxy.yaml", testConfig)
	cardPath := writeFile(t, "card.json", `{"TZ":"123456782"}`)

	out, err := run(t, "callback", "--config", cfgPath, "--operation", "2", "--card-data", cardPath)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "SRHR service is disabled")
}

func TestCallbackCmd_BadCardData(t *testing.T) {
	cfgPath := writeFile(t, "boi-proxy.yaml", testConfig)
	cardPath := writeFile(t, "card.json", `nope`)

	_, err := run(t, "callback", "--config", cfgPath, "--card-data", cardPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read card data")
}

func TestSmsCmd_Disabled(t *testing.T) {
	cfgPath := writeFile(t, "boi-proxy.yaml", testConfig)

	out, err := run(t, "sms", "--config", cfgPath, "--to", "0501234567", "--message", "hi")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "SMS service is disabled")
}

func TestEmployeeCmd_RequiresArg(t *testing.T) {
	_, err := run(t, "employee")
	assert.Error(t, err)
}
