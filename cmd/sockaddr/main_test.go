// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the CLI with the given arguments and returns its exit code
// and its standard output and error.
func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"sockaddr"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunParse(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// args are the command line arguments.
		args []string

		// wantCode is the expected exit code.
		wantCode int

		// wantStdout is the expected standard output.
		wantStdout string
	}{
		{
			name:       "ipv6",
			args:       []string{"parse", "[::1]:8080"},
			wantCode:   0,
			wantStdout: "family: IPv6\nhost: ::1\nport: 8080\nreserved: false\naddress: [::1]:8080\n",
		},
		{
			name:       "wildcard",
			args:       []string{"parse", "*:80"},
			wantCode:   0,
			wantStdout: "family: IPv4\nhost: 0.0.0.0\nport: 80\nreserved: true\naddress: 0.0.0.0:80\n",
		},
		{
			name:       "unix",
			args:       []string{"parse", "unix:/tmp/app.sock"},
			wantCode:   0,
			wantStdout: "family: Unix\npath: /tmp/app.sock\n",
		},
		{
			name:     "invalid address",
			args:     []string{"parse", "localhost:80"},
			wantCode: 1,
		},
		{
			name:     "missing argument",
			args:     []string{"parse"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(tt.args...)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, stdout)
			}
		})
	}
}

func TestRunUnix(t *testing.T) {
	code, stdout, _ := runCLI("unix", "/run/app.sock")
	assert.Equal(t, 0, code)
	assert.Equal(t, "family: Unix\npath: /run/app.sock\n", stdout)

	long := string(bytes.Repeat([]byte("a"), 4096))
	code, _, stderr := runCLI("unix", long)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid argument")
}

func TestRunResolveNumeric(t *testing.T) {
	code, stdout, _ := runCLI("resolve", "--numeric-host", "--socktype", "stream", "127.0.0.1", "8080")
	assert.Equal(t, 0, code)
	assert.Equal(t, "stream tcp 127.0.0.1:8080\n", stdout)

	code, stdout, _ = runCLI("resolve", "--passive", "--family", "ipv6", "--socktype", "dgram", "-", "53")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dgram udp [::]:53\n", stdout)

	code, stdout, _ = runCLI("resolve", "--family", "ipv4", "--socktype", "stream", "-", "80")
	assert.Equal(t, 0, code)
	assert.Equal(t, "stream tcp 127.0.0.1:80\n", stdout)

	code, stdout, _ = runCLI("resolve", "--family", "ipv4", "--socktype", "stream", "10.0.0.1", "-")
	assert.Equal(t, 0, code)
	assert.Equal(t, "stream tcp 10.0.0.1:0\n", stdout)

	code, _, stderr := runCLI("resolve", "-", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "address resolution failed")

	code, stdout, _ = runCLI("resolve", "--canonname", "--socktype", "stream", "::1", "80")
	assert.Equal(t, 0, code)
	assert.Equal(t, "canonname: ::1\nstream tcp [::1]:80\n", stdout)
}

func TestRunResolveFailures(t *testing.T) {
	code, _, stderr := runCLI("resolve", "--numeric-host", "example.com", "80")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "address resolution failed")

	code, _, _ = runCLI("resolve", "--family", "ipx", "127.0.0.1", "80")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("resolve", "--socktype", "raw", "127.0.0.1", "80")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("resolve", "--dns-server", "nope", "127.0.0.1", "80")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("resolve", "127.0.0.1")
	assert.Equal(t, 2, code)
}

func TestRunOptions(t *testing.T) {
	code, stdout, _ := runCLI("options")
	assert.Equal(t, 0, code)
	assert.Equal(t,
		"NoDelay\nLinger\nFastOpen\nQuickAck\nReuseAddr\nReverseLookup\nInstallSignalHandler\n", stdout)

	code, stdout, _ = runCLI("options", "reuseaddr", "NoDelay")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NoDelay|ReuseAddr\n", stdout)

	code, _, _ = runCLI("options", "KeepAlive")
	assert.Equal(t, 2, code)
}

func TestRunIPv6(t *testing.T) {
	code, stdout, _ := runCLI("ipv6")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "ipv6 supported: ")
}

func TestRunUnknownFlag(t *testing.T) {
	code, _, _ := runCLI("--no-such-flag", "options")
	assert.Equal(t, 2, code)
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	code, _, stderr := runCLI("--verbose", "resolve", "--numeric-host", "127.0.0.1", "80")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, `"msg":"getaddrinfoStart"`)
	assert.Contains(t, stderr, `"spanID"`)
}

func TestRunLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "sockaddr.log")

	code, _, stderr := runCLI("--log-file", logFile, "resolve", "--numeric-host", "127.0.0.1", "80")

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"getaddrinfoDone"`)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()

	yamlFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("options: NoDelay|QuickAck\n"), 0o600))
	code, stdout, _ := runCLI("--config", yamlFile, "options")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NoDelay|QuickAck\n", stdout)

	jsonFile := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"options": "Linger"}`), 0o600))
	code, stdout, _ = runCLI("-c", jsonFile, "options")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Linger\n", stdout)

	code, _, _ = runCLI("--config", filepath.Join(dir, "config.toml"), "options")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("--config", filepath.Join(dir, "missing.yaml"), "options")
	assert.Equal(t, 1, code)
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "dns_server: 8.8.8.8:53\n" +
		"log_file: /tmp/sockaddr.log\n" +
		"log_max_size_mb: 10\n" +
		"log_max_backups: 3\n" +
		"options: ReuseAddr\n" +
		"timeout: 5s\n" +
		"verbose: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadFileConfig(path)

	require.NoError(t, err)
	assert.Equal(t, &fileConfig{
		DNSServer:     "8.8.8.8:53",
		LogFile:       "/tmp/sockaddr.log",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		Options:       "ReuseAddr",
		Timeout:       5 * time.Second,
		Verbose:       true,
	}, cfg)

	empty, err := loadFileConfig("")
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{}, empty)
}
