package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegano/util"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	conf := &Config{
		Logger: util.LoggerInfo{
			Filename:  "/tmp/stegano.log",
			IsColored: false,
			SaveTime:  true,
			Mode:      util.Error | util.Warning | util.Info,
		},
		Hide: HideDefaults{Framing: "v2"},
	}
	require.NoError(t, Save(path, conf))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}

func TestLoadBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml::"), 0600))
	_, err := Load(path)
	assert.Error(t, err)
}
