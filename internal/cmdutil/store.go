package cmdutil

import (
	"fmt"

	"github.com/viewmodes/vmi/internal/config"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/inventory"
	"github.com/viewmodes/vmi/internal/kubernetes"
	"github.com/viewmodes/vmi/internal/mapping"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/store"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// OpenStore builds the configuration store selected by the global config.
// Client failures are returned as *ExitError with ExitConnectivityError.
func OpenStore(gc *config.GlobalConfig) (store.Store, error) {
	if gc == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	switch gc.StoreBackend {
	case "", config.BackendFile:
		dir, err := config.ExpandPath(gc.StoreDir)
		if err != nil {
			return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("expanding store dir: %w", err)}
		}
		output.Debug("using file store", "dir", dir)
		return store.NewFileStore(dir), nil

	case config.BackendKubernetes:
		if err := config.ValidateNamespace(gc.Namespace); err != nil {
			return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
		}
		client, err := kubernetes.NewClient(kubernetes.ClientOptions{
			Kubeconfig: gc.Kubeconfig,
			Context:    gc.Context,
		})
		if err != nil {
			return nil, &oerrors.ExitError{Code: oerrors.ExitConnectivityError, Err: err}
		}
		namespace := gc.Namespace
		if namespace == "" {
			namespace = client.DefaultNamespace
		}
		output.Debug("using configmap store", "namespace", namespace, "context", gc.Context)
		return store.NewConfigMapStore(client.Clientset, namespace), nil

	default:
		return nil, &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  oerrors.NewValidationError(fmt.Sprintf("unknown store backend %q", gc.StoreBackend), gc.ConfigPath, "store.backend", "use 'file' or 'kubernetes'"),
		}
	}
}

// OpenAssets returns the bundled assets, or the override directory when set.
func OpenAssets(gc *config.GlobalConfig) (inventory.AssetResolver, error) {
	if gc == nil || gc.AssetsDir == "" {
		return inventory.NewEmbeddedAssets(), nil
	}
	dir, err := config.ExpandPath(gc.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("expanding assets dir: %w", err)
	}
	output.Debug("using assets directory", "dir", dir)
	return inventory.NewDirAssets(dir), nil
}

// NewMapper wires assets, store and the configured filter into a Mapper.
func NewMapper(gc *config.GlobalConfig) (*mapping.Mapper, error) {
	assets, err := OpenAssets(gc)
	if err != nil {
		return nil, err
	}
	s, err := OpenStore(gc)
	if err != nil {
		return nil, err
	}
	return mapping.New(assets, s, gc.Config.Filter()), nil
}

// EntityType returns the flag value, or the configured entity type.
func EntityType(gc *config.GlobalConfig, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if gc != nil && gc.Config != nil && gc.Config.Fields.EntityType != "" {
		return gc.Config.Fields.EntityType
	}
	return viewmode.DefaultEntityType
}
