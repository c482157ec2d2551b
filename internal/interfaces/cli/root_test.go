package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandShape(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "propevd", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "client", "property", "contract"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestEntitySubcommands(t *testing.T) {
	cmd := NewRootCommand()

	cases := map[string][]string{
		"client":   {"list", "add", "update", "delete", "find"},
		"property": {"list", "add", "update", "delete", "find"},
		"contract": {"list", "add", "update", "delete"},
	}
	for entity, subs := range cases {
		for _, sub := range subs {
			found, _, err := cmd.Find([]string{entity, sub})
			require.NoError(t, err)
			assert.Equal(t, sub, found.Name(), "%s %s", entity, sub)
		}
	}
}

func TestMigrateSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	migrate, _, err := cmd.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", migrate.Name())

	migrate, _, err = cmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", migrate.Name())
}

func TestClientAddRequiresFlags(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"client", "add"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
