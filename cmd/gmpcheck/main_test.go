package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gmpcheck-go/internal/config"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "target.csv")
	database := filepath.Join(dir, "db.csv")
	require.NoError(t, os.WriteFile(target, []byte("Торговое наименование;Производитель\nБиокан DHPPi;MSD\nРабизин;Merial\n"), 0644))
	require.NoError(t, os.WriteFile(database, []byte("Производитель;Срок действия;Перечень продукции\nMSD;до 01.01.2099;Биокан DHPPi\n"), 0644))
	return target, database
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunTable(t *testing.T) {
	target, database := writeInputs(t)

	stdout, _, err := execute(t, target, database, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "GMP до 01.01.2099")
	assert.Contains(t, stdout, "checked 2: 1 OK, 0 expired, 1 not found")
}

func TestRunJSONToFile(t *testing.T) {
	target, database := writeInputs(t)
	out := filepath.Join(t.TempDir(), "report.json")

	stdout, _, err := execute(t, target, database, "--format", "json", "-o", out, "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"run_id":`))
	assert.Contains(t, string(data), `"status":"NOT FOUND"`)
}

func TestRunErrors(t *testing.T) {
	target, _ := writeInputs(t)

	_, _, err := execute(t, target, filepath.Join(t.TempDir(), "missing.xlsx"), "--log-level", "error")
	assert.ErrorIs(t, err, gmpcheck.ErrFileNotFound)

	_, _, err = execute(t, target, target, "--format", "pdf")
	assert.ErrorContains(t, err, "invalid output format")

	_, _, err = execute(t, target)
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.NoDatePolicy = "active"
	cfg.Workers = 3
	cfg.AutoDetectRoles = true

	opts := optionsFromConfig(cfg, log)
	assert.Equal(t, parser.NoDateActive, opts.NoDatePolicy)
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, 50, opts.HeaderScanRows)
	assert.Equal(t, gmpcheck.RolesAuto, opts.Roles)
	assert.Same(t, log, opts.Logger)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(config.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}
