package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-deployer/pkg/services/artifact"
)

func TestBuildEnv_Defaults(t *testing.T) {
	root := t.TempDir()

	vars, err := artifact.BuildEnv(root, "dev", "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", vars["VITE_AWS_REGION"])
	assert.Equal(t, "development", vars["NODE_ENV"])
}

func TestBuildEnv_ProdNodeEnv(t *testing.T) {
	root := t.TempDir()

	vars, err := artifact.BuildEnv(root, "prod", "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, "production", vars["NODE_ENV"])
}

func TestBuildEnv_EnvFileOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	envFile := filepath.Join(root, ".env.staging")
	content := "VITE_API_URL=https://api.staging.example.com\nNODE_ENV=production\n# a comment\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	vars, err := artifact.BuildEnv(root, "staging", "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "https://api.staging.example.com", vars["VITE_API_URL"])
	assert.Equal(t, "production", vars["NODE_ENV"])
	assert.Equal(t, "eu-west-1", vars["VITE_AWS_REGION"])
}

func TestBuildEnv_MalformedEnvFile(t *testing.T) {
	root := t.TempDir()
	envFile := filepath.Join(root, ".env.dev")
	require.NoError(t, os.WriteFile(envFile, []byte("not a valid line"), 0644))

	_, err := artifact.BuildEnv(root, "dev", "us-west-2")
	assert.Error(t, err)
}
