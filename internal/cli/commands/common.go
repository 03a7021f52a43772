package commands

import (
	"fmt"
	"os"

	"github.com/gearbase-dev/gearbase/internal/cli/client"
	"github.com/gearbase-dev/gearbase/internal/cli/config"
	"github.com/gearbase-dev/gearbase/internal/cli/envselect"
	"github.com/gearbase-dev/gearbase/internal/cli/session"
	"github.com/gearbase-dev/gearbase/internal/cli/store"
	"github.com/gearbase-dev/gearbase/internal/logger"
)

// getSelectedEnvironment loads the config and resolves the environment to
// use. This is common logic used by most commands.
func getSelectedEnvironment(envName string) (*config.Environment, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'gearbase init' to create a configuration file", err)
	}

	env, err := envselect.Resolve(cfg, envName)
	if err != nil {
		return nil, err
	}

	if env.URL == "" {
		return nil, fmt.Errorf("environment URL is empty. Please edit gearbase.json and add a valid URL")
	}

	return env, nil
}

// openStore picks the durable session store. The OS keyring is the default;
// GEARBASE_SESSION_STORE=file selects the config-dir file store for headless
// hosts, and =memory an ephemeral one for CI.
func openStore(envName string) (store.Store, error) {
	switch os.Getenv("GEARBASE_SESSION_STORE") {
	case "file":
		return store.NewFile(envName)
	case "memory":
		return store.NewMem(), nil
	default:
		return store.NewKeyring(envName), nil
	}
}

// newSession builds the session client for an environment. The invalidation
// handler is the CLI's answer to the "redirect to login" behavior a web UI
// would have.
func newSession(env *config.Environment) (*session.Client, *client.Client, error) {
	st, err := openStore(env.Name)
	if err != nil {
		return nil, nil, err
	}

	api := client.New(env.URL, st)
	sess := session.New(api, st, logger.GetLogger())
	sess.OnInvalidate(func() {
		fmt.Fprintln(os.Stderr, "Session is no longer valid. Run 'gearbase login' to authenticate again.")
	})

	return sess, api, nil
}
